// Copyright (C) 2019-2025 Algorand, Inc.
// This file is part of go-algorand
//
// go-algorand is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// go-algorand is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with go-algorand.  If not, see <https://www.gnu.org/licenses/>.

// Package codecs holds helpers for the JSON documents kept in a data directory.
package codecs

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"reflect"
)

// NewFormattedJSONEncoder returns a json encoder configured for
// pretty-printed output (human-readable)
func NewFormattedJSONEncoder(w io.Writer) *json.Encoder {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "\t")
	enc.SetEscapeHTML(false)
	return enc
}

// LoadObjectFromFile implements the common pattern for loading an instance
// of an object from a json file.
func LoadObjectFromFile(filename string, object interface{}) (err error) {
	f, err := os.Open(filename)
	if err != nil {
		return
	}
	defer f.Close()
	return json.NewDecoder(f).Decode(object)
}

// SaveObjectToFile implements the common pattern for saving an object to a file as json
func SaveObjectToFile(filename string, object interface{}) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()
	return NewFormattedJSONEncoder(f).Encode(object)
}

// SaveNonDefaultValuesToFile saves a flat struct to a file as json, keeping
// only the fields that differ from defaultObject. Fields named in
// alwaysInclude are written regardless.
func SaveNonDefaultValuesToFile(filename string, object, defaultObject interface{}, alwaysInclude []string) error {
	values, err := createValueMap(object)
	if err != nil {
		return err
	}
	defaults, err := createValueMap(defaultObject)
	if err != nil {
		return err
	}

	keep := make(map[string]bool, len(alwaysInclude))
	for _, name := range alwaysInclude {
		keep[name] = true
	}
	for name := range values {
		if !keep[name] && isDefaultValue(name, values, defaults) {
			delete(values, name)
		}
	}
	return SaveObjectToFile(filename, values)
}

func createValueMap(object interface{}) (map[string]interface{}, error) {
	val := reflect.Indirect(reflect.ValueOf(object))
	if val.Kind() != reflect.Struct {
		return nil, fmt.Errorf("codecs: cannot diff %s against defaults", val.Kind())
	}

	valueMap := make(map[string]interface{}, val.NumField())
	for i := 0; i < val.NumField(); i++ {
		field := val.Type().Field(i)
		if !field.IsExported() {
			continue
		}
		if k := field.Type.Kind(); k == reflect.Struct || k == reflect.Map {
			return nil, fmt.Errorf("codecs: nested field %s is not supported", field.Name)
		}
		valueMap[field.Name] = val.Field(i).Interface()
	}
	return valueMap, nil
}

func isDefaultValue(name string, values, defaults map[string]interface{}) bool {
	val, hasVal := values[name]
	def, hasDef := defaults[name]
	if hasVal != hasDef {
		return false
	}

	return reflect.DeepEqual(val, def)
}
