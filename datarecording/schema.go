package datarecording

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/fatih/structs"
)

var errNotStruct = errors.New("entry must be a struct")

func isColumnKind(kind reflect.Kind) bool {
	switch kind {
	case reflect.Bool, reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32,
		reflect.Uint64, reflect.Float32, reflect.Float64:
		return true
	}

	return false
}

// validateEntryType accepts structs whose fields are all exported scalars.
// Unexported fields would be dropped by structs.Values and shift the columns.
func validateEntryType(entryType reflect.Type) error {
	if entryType.Kind() != reflect.Struct {
		return errNotStruct
	}

	for i := 0; i < entryType.NumField(); i++ {
		field := entryType.Field(i)

		if !field.IsExported() {
			return fmt.Errorf("field %s is not exported", field.Name)
		}

		if !isColumnKind(field.Type.Kind()) {
			return fmt.Errorf("field %s of kind %s cannot be stored",
				field.Name, field.Type.Kind())
		}
	}

	return nil
}

func createTableSQL(tableName string, sampleEntry any) string {
	columns := structs.Names(sampleEntry)

	return fmt.Sprintf("CREATE TABLE %s (\n\t%s\n);",
		tableName, strings.Join(columns, ",\n\t"))
}

func insertSQL(tableName string, sampleEntry any) string {
	numColumns := len(structs.Names(sampleEntry))
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", numColumns), ", ")

	return fmt.Sprintf("INSERT INTO %s VALUES (%s)", tableName, placeholders)
}
