package models

import (
	"strings"
	"time"
)

const (
	ContractTypeSupplier   = "Supplier"
	ContractTypeCustomer   = "Customer"
	ContractTypeService    = "Service"
	ContractTypeNDA        = "NDA"
	ContractTypePurchase   = "Purchase"
	ContractTypeLicense    = "License"
	ContractTypeEmployment = "Employment"
	ContractTypeGeneral    = "General"

	ContractStatusActive = "Active"
)

var ContractTypes = []string{
	ContractTypeSupplier,
	ContractTypeCustomer,
	ContractTypeService,
	ContractTypeNDA,
	ContractTypePurchase,
	ContractTypeLicense,
	ContractTypeEmployment,
	ContractTypeGeneral,
}

type Contract struct {
	Id            string     `json:"id"                       form:"id"`
	ContractName  string     `json:"contract_name"            form:"contract_name"  validate:"required"`
	ContractType  string     `json:"contract_type"            form:"contract_type"`
	Description   string     `json:"description"              form:"description"`
	FileSize      int64      `json:"file_size"                form:"-"`
	UploadDate    time.Time  `json:"upload_date"              form:"-"`
	EffectiveDate *time.Time `json:"effective_date,omitempty" form:"effective_date" time_format:"2006-01-02"`
	ExpiryDate    *time.Time `json:"expiry_date,omitempty"    form:"expiry_date"    time_format:"2006-01-02"`
	ContractValue *float64   `json:"contract_value,omitempty" form:"contract_value" validate:"omitempty,gte=0"`
	Status        string     `json:"status"                   form:"status"`
	ContractParty string     `json:"contract_party"           form:"contract_party"`

	Content []byte `json:"-" form:"-"`
}

type contractKeywords struct {
	kind  string
	words []string
}

// Checked in order; the first matching group wins.
var contractTypeKeywords = []contractKeywords{
	{ContractTypeSupplier, []string{"supplier", "vendor"}},
	{ContractTypeCustomer, []string{"customer", "client"}},
	{ContractTypeService, []string{"service", "sla"}},
	{ContractTypeNDA, []string{"nda", "confidential"}},
	{ContractTypePurchase, []string{"purchase", "po"}},
	{ContractTypeLicense, []string{"license", "software"}},
	{ContractTypeEmployment, []string{"employment", "hr"}},
}

// InferContractType guesses a contract type from keywords in the file name.
// It is a heuristic: "report.pdf" matches "po" and classifies as Purchase.
func InferContractType(fileName string) string {
	lower := strings.ToLower(fileName)
	for _, group := range contractTypeKeywords {
		for _, w := range group.words {
			if strings.Contains(lower, w) {
				return group.kind
			}
		}
	}
	return ContractTypeGeneral
}

func IsContractType(s string) bool {
	for _, t := range ContractTypes {
		if t == s {
			return true
		}
	}
	return false
}
