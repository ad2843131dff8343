package shared

import (
	"reflect"
	"strconv"

	"hotel/shared/constant"
	"hotel/shared/dto"
	"hotel/shared/timezone"

	"github.com/rs/zerolog/log"
)

// ConvertStringToBool parses a query flag. Empty or malformed values mean "not filtered".
func ConvertStringToBool(value string) *bool {
	if value == constant.Empty {
		return nil
	}

	boolValue, err := strconv.ParseBool(value)
	if err != nil {
		log.Warn().Err(err).Str("value", value).Msg("ignoring malformed boolean")

		return nil
	}

	return &boolValue
}

func CalculateTotalPage(total, limit int) int {
	if total <= 0 || limit <= 0 {
		return 1
	}

	return (total + limit - 1) / limit
}

// TransformFields turns a partial-update request into a column map keyed by db tags.
// Zero and nil fields are left out, pointers are dereferenced so *decimal.Decimal and
// *bool edits carry their value, and the audit columns are always set.
func TransformFields(data any, username string) map[string]any {
	val := reflect.Indirect(reflect.ValueOf(data))
	typ := val.Type()

	updatedFields := make(map[string]any)

	for index := range val.NumField() {
		fieldName := typ.Field(index).Tag.Get("db")
		if fieldName == constant.Empty || fieldName == "-" {
			continue
		}

		field := val.Field(index)
		if field.IsZero() {
			continue
		}

		if field.Kind() == reflect.Pointer {
			field = field.Elem()
		}

		updatedFields[fieldName] = field.Interface()
	}

	updatedFields[constant.FieldModifiedAt] = timezone.Now()
	updatedFields[constant.FieldModifiedBy] = username

	return updatedFields
}

// FilterByID selects one row by its primary key.
func FilterByID(id, fieldID, table string) dto.FilterGroup {
	return dto.FilterGroup{
		Filters: []any{
			dto.Filter{
				Field:    fieldID,
				Value:    id,
				Operator: dto.FilterOperatorEq,
				Table:    table,
			},
		},
	}
}
