// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package generator

import (
	"net/http"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/api2spec/odata2openapi/internal/edm"
	"github.com/api2spec/odata2openapi/internal/odatapath"
)

func TestOperationIDs(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		method string
		path   string
		want   string
	}{
		{http.MethodGet, "/Customers", "Customers.Customer.ListCustomer"},
		{http.MethodPost, "/Customers", "Customers.Customer.CreateCustomer"},
		{http.MethodGet, "/Customers/{customer-id}", "Customers.Customer.GetCustomer"},
		{http.MethodPatch, "/Customers/{customer-id}", "Customers.Customer.UpdateCustomer"},
		{http.MethodPut, "/Customers/{customer-id}", "Customers.Customer.SetCustomer"},
		{http.MethodDelete, "/Customers/{customer-id}", "Customers.Customer.DeleteCustomer"},
		{http.MethodDelete, "/Customers(CustomerCode='{CustomerCode}')", "Customers.Customer.DeleteCustomerByCustomerCode"},
		{http.MethodGet, "/Customers/$count", "Customers.GetCount"},
		{http.MethodGet, "/Customers/NS.VipCustomer", "Customers.ListVipCustomer"},
		{http.MethodGet, "/Customers/{customer-id}/NS.VipCustomer", "Customers.Customer.GetVipCustomer"},
		{http.MethodGet, "/Customers/{customer-id}/$value", "Customers.Customer.GetContent"},
		{http.MethodPut, "/Customers/{customer-id}/Photo", "Customers.Customer.UpdatePhoto"},
		{http.MethodGet, "/Customers/{customer-id}/Address", "Customers.Customer.GetAddress"},
		{http.MethodGet, "/Customers/{customer-id}/Orders", "Customers.ListOrders"},
		{http.MethodGet, "/Customers/{customer-id}/Orders/{order-id}", "Customers.GetOrders"},
		{http.MethodPost, "/Customers/{customer-id}/Orders", "Customers.CreateOrders"},
		{http.MethodGet, "/Customers/{customer-id}/Orders/$ref", "Customers.ListRefOrders"},
		{http.MethodDelete, "/Customers/{customer-id}/Orders/{order-id}/$ref", "Customers.DeleteRefOrdersByID"},
		{http.MethodGet, "/Customers/{customer-id}/Orders/$count", "Customers.Customer.Orders.GetCount"},
		{http.MethodGet, "/Customers/{customer-id}/NS.Rank()", "Customers.Customer.Rank"},
		{http.MethodPost, "/Customers/{customer-id}/NS.Promote", "Customers.Customer.Promote"},
		{http.MethodGet, "/Me", "Me.Customer.GetCustomer"},
		{http.MethodPatch, "/Me", "Me.Customer.UpdateCustomer"},
		{http.MethodGet, "/Me/Manager", "Me.GetManager"},
		{http.MethodGet, "/Top()", "FunctionImport.Top"},
		{http.MethodPost, "/Reset", "ActionImport.Reset"},
		{http.MethodGet, "/$metadata", "Metadata.GetMetadata"},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			op := f.operation(t, tt.method, tt.path)
			assert.Equal(t, tt.want, op.OperationID)
		})
	}
}

func TestOperationID_OverloadsAreHashed(t *testing.T) {
	f := newFixture(t)

	one := f.operation(t, http.MethodGet, "/Customers/NS.MyFunction(p1='{p1}')").OperationID
	two := f.operation(t, http.MethodGet, "/Customers/NS.MyFunction(p1='{p1}',p2={p2})").OperationID

	hashed := regexp.MustCompile(`^Customers\.MyFunction-[0-9a-f]{4}$`)
	assert.Regexp(t, hashed, one)
	assert.Regexp(t, hashed, two)
	assert.NotEqual(t, one, two)
}

func TestOperationID_Deterministic(t *testing.T) {
	for _, name := range []string{
		"/Customers/NS.MyFunction(p1='{p1}',p2={p2})",
		"/Customers(CustomerCode='{CustomerCode}')",
		"/Customers/{customer-id}/Orders/{order-id}",
	} {
		f0 := newFixture(t)
		first := OperationID(f0.model, f0.path(t, name))
		for i := 0; i < 5; i++ {
			f := newFixture(t)
			assert.Equal(t, first, OperationID(f.model, f.path(t, name)), name)
		}
	}
}

func TestOperationID_Disabled(t *testing.T) {
	f := newFixture(t)
	f.ctx.Settings.EnableOperationID = false

	for _, name := range []string{"/Customers", "/Customers/{customer-id}/Orders", "/Top()"} {
		p := f.path(t, name)
		h := NewRegistry().Handler(p.Kind(), http.MethodGet)
		require.NotNil(t, h)
		op, err := h.CreateOperation(f.ctx, p)
		require.NoError(t, err)
		assert.Empty(t, op.OperationID, name)
	}
}

func TestOperationIDs_UniqueAcrossModel(t *testing.T) {
	f := newFixture(t)
	reg := NewRegistry()

	seen := make(map[string]string)
	for name, p := range f.paths {
		for _, m := range reg.Methods(p.Kind()) {
			op, err := reg.Handler(p.Kind(), m).CreateOperation(f.ctx, p)
			if err != nil {
				continue
			}
			key := m + " " + name
			if prev, dup := seen[op.OperationID]; dup {
				t.Errorf("operation id %s used by %s and %s", op.OperationID, prev, key)
			}
			seen[op.OperationID] = key
		}
	}
	assert.NotEmpty(t, seen)
}

func TestTags(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		method string
		path   string
		want   string
	}{
		{http.MethodGet, "/Customers", "Customers.Customer"},
		{http.MethodGet, "/Customers/{customer-id}/Orders", "Customers.Order"},
		{http.MethodGet, "/Customers/{customer-id}/Orders/$count", "Customers.Order"},
		{http.MethodGet, "/Customers/{customer-id}/Address", "Customers.Customer"},
		{http.MethodGet, "/Customers/NS.MyFunction(p1='{p1}')", "Customers.Customer.Functions"},
		{http.MethodPost, "/Customers/{customer-id}/NS.Promote", "Customers.Customer.Actions"},
		{http.MethodGet, "/Top()", "Customers"},
		{http.MethodPost, "/Reset", "Reset"},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			op := f.operation(t, tt.method, tt.path)
			assert.Equal(t, []string{tt.want}, op.Tags)
		})
	}
}

func TestTags_OperationOnNavigation(t *testing.T) {
	f := newFixture(t)
	h := NewRegistry().Handler(odatapath.KindOperation, http.MethodGet)
	require.NotNil(t, h)

	var rank *edm.Operation
	for _, op := range f.model.BoundOperations("NS.Customer", false) {
		if op.Name == "Rank" {
			rank = op
		}
	}
	require.NotNil(t, rank)

	path := f.path(t, "/Me/Manager").Append(&odatapath.OperationSegment{Operation: rank})
	op, err := h.CreateOperation(f.ctx, path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Me.Customer.Functions"}, op.Tags)
}

func TestTags_RegisteredOnce(t *testing.T) {
	f := newFixture(t)

	f.operation(t, http.MethodGet, "/Customers")
	f.operation(t, http.MethodPost, "/Customers")
	f.operation(t, http.MethodGet, "/Customers/{customer-id}")
	f.operation(t, http.MethodGet, "/Customers/NS.MyFunction(p1='{p1}')")

	var names []string
	for _, tag := range f.doc.Tags() {
		names = append(names, tag.Name)
	}
	assert.Equal(t, []string{"Customers.Customer", "Customers.Customer.Functions"}, names)

	tags := f.doc.Tags()
	assert.Equal(t, tocPage, tags[0].Extensions[tocTypeKey])
	assert.Equal(t, tocContainer, tags[1].Extensions[tocTypeKey])
}

func TestByParts(t *testing.T) {
	assert.Equal(t, "ByCustomerCode", byParts("CustomerCode"))
	assert.Equal(t, "ByOrderIDNo", byParts("orderID,no"))
	assert.True(t, strings.HasPrefix(byParts(""), "By"))
}
