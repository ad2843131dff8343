package validator

import (
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"reflect"
	"slices"
	"strconv"
	"strings"
	"time"

	"hotel/shared/constant"
	"hotel/shared/failure"

	val "github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

const bytesPerMB = 1 << 20

var validate *val.Validate

func fileHeader(field val.FieldLevel) (multipart.FileHeader, bool) {
	file, ok := field.Field().Interface().(multipart.FileHeader)

	return file, ok
}

// mimetypes=<type> <type> checks the declared Content-Type of an upload.
func validateMimetypes(field val.FieldLevel) bool {
	file, ok := fileHeader(field)
	if !ok {
		return false
	}

	return slices.Contains(strings.Fields(field.Param()), file.Header.Get(constant.RequestHeaderContentType))
}

// maxfilesize=<MB> caps the size of an upload.
func validateMaxFileSize(field val.FieldLevel) bool {
	file, ok := fileHeader(field)
	if !ok {
		return false
	}

	maxSizeMB, err := strconv.ParseFloat(field.Param(), 64)
	if err != nil {
		return false
	}

	return file.Size <= int64(maxSizeMB*bytesPerMB)
}

// date accepts calendar dates in YYYY-MM-DD form.
func validateDate(field val.FieldLevel) bool {
	_, err := time.Parse(constant.CalendarDate, field.Field().String())

	return err == nil
}

// money rejects amounts finer than a cent. Decimals reach validators as
// float64, so the original field is read back from the parent struct.
func validateMoney(field val.FieldLevel) bool {
	parent := field.Parent()
	if parent.Kind() == reflect.Pointer {
		parent = parent.Elem()
	}

	if parent.Kind() != reflect.Struct {
		return false
	}

	raw := parent.FieldByName(field.StructFieldName())
	if raw.Kind() == reflect.Pointer {
		if raw.IsNil() {
			return true
		}

		raw = raw.Elem()
	}

	amount, ok := raw.Interface().(decimal.Decimal)
	if !ok {
		return false
	}

	return amount.Equal(amount.Round(constant.MoneyDecimals))
}

func decimalValue(field reflect.Value) any {
	if d, ok := field.Interface().(decimal.Decimal); ok {
		f, _ := d.Float64()

		return f
	}

	return nil
}

// jsonName reports fields under their wire name so messages match the request body.
func jsonName(field reflect.StructField) string {
	name, _, _ := strings.Cut(field.Tag.Get("json"), ",")

	switch name {
	case "-":
		return ""
	case "":
		return field.Name
	default:
		return name
	}
}

func init() {
	validate = val.New(val.WithRequiredStructEnabled())

	validate.RegisterTagNameFunc(jsonName)

	// money fields are compared as numbers so gt/gte/lte work on them
	validate.RegisterCustomTypeFunc(decimalValue, decimal.Decimal{})

	for tag, fn := range map[string]val.Func{
		"empty":       func(fl val.FieldLevel) bool { return fl.Field().IsZero() },
		"mimetypes":   validateMimetypes,
		"maxfilesize": validateMaxFileSize,
		"date":        validateDate,
		"money":       validateMoney,
	} {
		if err := validate.RegisterValidation(tag, fn); err != nil {
			panic(err)
		}
	}
}

// Validate decodes a JSON body into data and validates it. Decode and
// validation problems both come back as 400 failures.
func Validate[T any](r io.Reader, data *T) error {
	if err := json.NewDecoder(r).Decode(data); err != nil {
		return failure.BadRequest(fmt.Errorf("failed to decode request body: %w", err)) //nolint:wrapcheck
	}

	return ValidateStruct(data)
}

func ValidateStruct[T any](data *T) error {
	if err := validate.Struct(data); err != nil {
		return failure.BadRequestFromString(message(err)) //nolint:wrapcheck
	}

	return nil
}

func ValidateVar(field any, tag string) error {
	if err := validate.Var(field, tag); err != nil {
		return failure.BadRequestFromString(message(err)) //nolint:wrapcheck
	}

	return nil
}
