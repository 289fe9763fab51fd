package model

// ContractType identifies which booking flow a template belongs to.
type ContractType string

const (
	TypeRental         ContractType = "rental"
	TypePurchase       ContractType = "purchase"
	TypeVacationRental ContractType = "vacation_rental"
)

// VariableType constrains what a template variable is expected to hold.
type VariableType string

const (
	VarString VariableType = "string"
	VarNumber VariableType = "number"
	VarDate   VariableType = "date"
	VarMoney  VariableType = "money"
)

// TemplateVariable declares one placeholder key a template expects from the caller.
type TemplateVariable struct {
	Key       string       `json:"key"`
	Label     string       `json:"label"`
	ValueType VariableType `json:"value_type"`
	Required  bool         `json:"required"`
}

// LegalClause is one ordered clause of a template's legal text.
type LegalClause struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Content  string `json:"content"`
	Required bool   `json:"required"`
	Order    int    `json:"order"`
}

// ContractTemplate is an immutable document skeleton with {{TOKEN}} placeholders.
// Once registered, its markup and schema never change; updating means registering
// a new id and deactivating the old one.
type ContractTemplate struct {
	ID        string             `json:"id"`
	Type      ContractType       `json:"type"`
	Markup    string             `json:"markup"`
	Variables []TemplateVariable `json:"variables"`
	Clauses   []LegalClause      `json:"clauses"`
	Active    bool               `json:"active"`
}

// RequiredKeys returns the keys of all required variables in declaration order.
func (t *ContractTemplate) RequiredKeys() []string {
	var keys []string
	for _, v := range t.Variables {
		if v.Required {
			keys = append(keys, v.Key)
		}
	}
	return keys
}
