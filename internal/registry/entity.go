// Package registry defines the master-data entities the console manages and
// the REST bindings, field configurations and list projections shared by
// every CRUD screen.
package registry

import "fmt"

// Item is one record as the backend sends it. The client holds no schema
// beyond the field configuration; everything else passes through opaquely.
type Item map[string]any

// ID returns the record identifier as the backend provided it.
func (it Item) ID() any {
	return it["id"]
}

// IDString renders the identifier for URLs and display. JSON numbers arrive
// as float64; whole ones print without a decimal point.
func (it Item) IDString() string {
	return valueString(it.ID())
}

// Display returns the item's value under the entity's display field.
func (it Item) Display(nameKey string) string {
	if v, ok := it[nameKey]; ok {
		return valueString(v)
	}
	return ""
}

// Entity is the static configuration of one registry type: naming for the
// screen chrome, the URL slug, the display field and the form fields.
type Entity struct {
	Name         string // singular, e.g. "ward"
	Title        string // page heading
	AddLabel     string
	NameKey      string // display field in each item
	ColumnLabel  string
	EmptyMessage string
	Slug         string // path segment under /api/registry/
	HeadSlug     string // extra create endpoint, members only
	Fields       []Field
}

// The five registry entities. Slugs are fixed by the backend; note that
// grade is singular while the others are plural.
var (
	Wards = Entity{
		Name:         "ward",
		Title:        "Ward Directory",
		AddLabel:     "Add New Ward",
		NameKey:      "ward_name",
		ColumnLabel:  "Ward Name",
		EmptyMessage: "No wards found.",
		Slug:         "wards",
		Fields: []Field{
			{Name: "ward_name", Label: "Ward Name", Kind: FieldText, Required: true},
			{Name: "ward_number", Label: "Ward Number", Kind: FieldNumber, Required: true},
			{Name: "place", Label: "Place", Kind: FieldText},
		},
	}

	Grades = Entity{
		Name:         "grade",
		Title:        "Grade Directory",
		AddLabel:     "Add New Grade",
		NameKey:      "name",
		ColumnLabel:  "Grade Name",
		EmptyMessage: "No grades found.",
		Slug:         "grade",
		Fields: []Field{
			{Name: "name", Label: "Grade Name", Kind: FieldText, Required: true},
		},
	}

	Relationships = Entity{
		Name:         "relationship",
		Title:        "Relationship",
		AddLabel:     "Add New",
		NameKey:      "name",
		ColumnLabel:  "Relationship Name",
		EmptyMessage: "No relationships found.",
		Slug:         "relationships",
		Fields: []Field{
			{Name: "name", Label: "Relationship Name", Kind: FieldText, Required: true},
		},
	}

	Families = Entity{
		Name:         "family",
		Title:        "Family Directory",
		AddLabel:     "Add New Family",
		NameKey:      "family_name",
		ColumnLabel:  "Family Name",
		EmptyMessage: "No families found.",
		Slug:         "families",
		Fields: []Field{
			{Name: "family_name", Label: "Family Name", Kind: FieldText, Required: true},
			{Name: "origin", Label: "Origin", Kind: FieldText},
			{Name: "history", Label: "History", Kind: FieldTextArea},
		},
	}

	Members = Entity{
		Name:         "member",
		Title:        "Member Directory",
		AddLabel:     "Add New Member",
		NameKey:      "full_name",
		ColumnLabel:  "Member Name",
		EmptyMessage: "No members found.",
		Slug:         "members",
		HeadSlug:     "create-head",
		Fields: []Field{
			{Name: "full_name", Label: "Full Name", Kind: FieldText, Required: true},
			{Name: "family", Label: "Family", Kind: FieldNumber},
			{Name: "grade", Label: "Grade", Kind: FieldNumber},
			{Name: "relationship", Label: "Relationship", Kind: FieldNumber},
		},
	}
)

// All lists the entities in the order the menu shows them.
func All() []Entity {
	return []Entity{Wards, Grades, Relationships, Families, Members}
}

// ByName finds an entity by its singular name.
func ByName(name string) (Entity, error) {
	for _, e := range All() {
		if e.Name == name {
			return e, nil
		}
	}
	return Entity{}, fmt.Errorf("unknown entity: %s", name)
}
