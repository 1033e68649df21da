package form

import "github.com/idilsaglam/account/internal/model"

// IsSpouseSectionVisible reports whether the spouse sub-form is shown.
// Hiding the section keeps whatever was typed into it.
func IsSpouseSectionVisible(status model.MaritalStatus) bool {
	return status == model.Married
}
