package validator

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"fym/proj/internal/domain/filters"
	"fym/proj/internal/utils"

	govalidator "github.com/go-playground/validator/v10"
)

// New returns a validator with the custom catalog rules registered.
func New() *govalidator.Validate {
	v := govalidator.New(govalidator.WithRequiredStructEnabled())
	v.RegisterValidation("sortbycatalogfield", ValidateSortByCatalogField)
	v.RegisterValidation("imdbid", ValidateImdbID)
	return v
}

// structField strips the element index the validator appends for dive rules
// ("Invitees[1]" -> "Invitees").
func structField(name string) string {
	if i := strings.IndexByte(name, '['); i > 0 {
		return name[:i]
	}
	return name
}

func getFieldName(obj any, origFieldName string) (fieldName string) {
	origFieldName = structField(origFieldName)
	t := reflect.TypeOf(obj)
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	field, found := t.FieldByName(origFieldName)
	if !found {
		// nested struct field, reported under its own name
		return utils.CamelToSnake(origFieldName)
	}
	for _, key := range []string{"json", "schema"} {
		if tag := field.Tag.Get(key); tag != "" && tag != "-" {
			if name := strings.Split(tag, ",")[0]; name != "" {
				return name
			}
		}
	}
	return utils.CamelToSnake(origFieldName)
}

func ProcessValidationErrors(obj any, errs govalidator.ValidationErrors) map[string]string {
	processedErrors := make(map[string]string)
	for _, e := range errs {
		processedErrors[getFieldName(obj, e.StructField())] = GetErrorMsgForField(obj, e)
	}
	return processedErrors
}

func ValidateStruct(validator *govalidator.Validate, obj any) (validationErrs map[string]string) {
	if err := validator.Struct(obj); err != nil {
		validationErrs = ProcessValidationErrors(obj, err.(govalidator.ValidationErrors))
	}
	return
}

func GetErrorMsgForField(obj any, err govalidator.FieldError) (errorMsg string) {
	t := reflect.TypeOf(obj)
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if field, found := t.FieldByName(structField(err.StructField())); found {
		errorMsg = field.Tag.Get("errorMsg")
	}
	if errorMsg == "" {
		switch err.Tag() {
		case "required":
			errorMsg = "This field is required"
		case "max":
			errorMsg = fmt.Sprintf("The maximum value is %s", err.Param())
		case "min":
			errorMsg = fmt.Sprintf("The minimum value is %s", err.Param())
		case "gte":
			errorMsg = fmt.Sprintf("Value should be greater than or equal to %s", err.Param())
		case "lte":
			errorMsg = fmt.Sprintf("Value should be less than or equal to %s", err.Param())
		case "lt":
			errorMsg = fmt.Sprintf("Value should be less than %s", err.Param())
		case "gt":
			errorMsg = fmt.Sprintf("Value should be greater than %s", err.Param())
		case "gtefield":
			errorMsg = fmt.Sprintf("Value should be greater than or equal to %s", utils.CamelToSnake(err.Param()))
		case "eqfield", "eq":
			errorMsg = fmt.Sprintf("Value should be equal to %s", err.Param())
		case "nefield", "ne":
			errorMsg = fmt.Sprintf("Value should not be equal to %s", err.Param())
		case "oneof":
			errorMsg = fmt.Sprintf("Value should be one of %s", err.Param())
		case "len":
			errorMsg = fmt.Sprintf("Length should be equal to %s", err.Param())
		case "unique":
			errorMsg = "Value must not contain duplicate values"
		case "url":
			errorMsg = "Value must be a valid URL"
		case "email":
			errorMsg = "Value must be a valid email address"
		case "alphanum":
			errorMsg = "Value must be alphanumeric"
		case "sortbycatalogfield":
			errorMsg = "Value must be one of title, year, rating, optionally prefixed with '-' (e.g. -year)"
		case "imdbid":
			errorMsg = "Value must be an IMDb identifier (e.g. tt0111161)"
		default:
			errorMsg = "This field is invalid"
		}
	}
	return
}

// CUSTOM VALIDATORS

func ValidateSortByCatalogField(fl govalidator.FieldLevel) bool {
	sort := strings.TrimPrefix(fl.Field().String(), "-")
	if sort == "" {
		return false
	}
	for _, safe := range filters.CatalogSortSafelist {
		if strings.EqualFold(sort, safe) {
			return true
		}
	}
	return false
}

var imdbIDRX = regexp.MustCompile(`^tt\d{7,}$`)

func ValidateImdbID(fl govalidator.FieldLevel) bool {
	return imdbIDRX.MatchString(fl.Field().String())
}
