package testutil

import (
	"maps"
	"slices"

	"github.com/Veraticus/rplmatch/internal/model"
)

// Field names used by Builder unless overridden.
const (
	DefaultCustomerField  = "Customer"
	DefaultReferenceField = "RPL"
)

// Fixture is a named set of customer/RPL pairs.
type Fixture string

// Predefined fixtures.
const (
	// FixtureScreening has one row per confidence tier plus a blank customer.
	FixtureScreening Fixture = "screening"
	// FixtureDuplicates repeats RPL entries so candidates must be deduplicated.
	FixtureDuplicates Fixture = "duplicates"
)

var fixtures = map[Fixture][][2]string{
	FixtureScreening: {
		{"Acme Corporation", "ACME Corporation"},
		{"Jon Smith", "John Smith Ltd"},
		{"Umbrela Corp", "Umbrella"},
		{"", "Globex"},
		{"Zq", "Initech"},
	},
	FixtureDuplicates: {
		{"acme", "Acme"},
		{"acme co", "Acme"},
		{"ACME", "Acme"},
		{"Globex", "Globex"},
	},
}

// Builder assembles input records with a fluent API.
//
//	records := testutil.NewRecordBuilder().
//		WithFixture(testutil.FixtureScreening).
//		WithRow("Hooli", "Hooli XYZ").
//		Build()
type Builder struct {
	extra          map[string]model.Value
	customerField  string
	referenceField string
	rows           [][2]string
}

// NewRecordBuilder starts an empty builder using the default field names.
func NewRecordBuilder() *Builder {
	return &Builder{
		customerField:  DefaultCustomerField,
		referenceField: DefaultReferenceField,
	}
}

// WithFields renames the customer and reference columns.
func (b *Builder) WithFields(customer, reference string) *Builder {
	b.customerField = customer
	b.referenceField = reference
	return b
}

// WithRow appends one record. An empty customer is stored as an empty value.
func (b *Builder) WithRow(customer, reference string) *Builder {
	b.rows = append(b.rows, [2]string{customer, reference})
	return b
}

// WithFixture appends every row of fixture.
func (b *Builder) WithFixture(fixture Fixture) *Builder {
	b.rows = append(b.rows, fixtures[fixture]...)
	return b
}

// WithExtra adds a constant extra column to every record.
func (b *Builder) WithExtra(name string, value model.Value) *Builder {
	if b.extra == nil {
		b.extra = make(map[string]model.Value)
	}
	b.extra[name] = value
	return b
}

// Selector returns the field selector matching the built records.
func (b *Builder) Selector() model.FieldSelector {
	return model.FieldSelector{
		CustomerField:  b.customerField,
		ReferenceField: b.referenceField,
	}
}

// Build returns the records in insertion order.
func (b *Builder) Build() []model.Record {
	records := make([]model.Record, 0, len(b.rows))
	for _, row := range b.rows {
		fields := []model.Field{
			{Name: b.customerField, Value: textOrEmpty(row[0])},
			{Name: b.referenceField, Value: textOrEmpty(row[1])},
		}
		for _, name := range slices.Sorted(maps.Keys(b.extra)) {
			fields = append(fields, model.Field{Name: name, Value: b.extra[name]})
		}
		records = append(records, model.NewRecord(fields...))
	}
	return records
}

func textOrEmpty(s string) model.Value {
	if s == "" {
		return model.Empty()
	}
	return model.Text(s)
}
