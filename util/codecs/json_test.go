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

package codecs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

type testValue struct {
	Version int
	Bool    bool
	String  string
	Int     int
}

func TestIsDefaultValue(t *testing.T) {
	t.Parallel()
	a := require.New(t)

	v := testValue{Bool: true, String: "default", Int: 1}
	def := testValue{Bool: true, String: "default", Int: 2}

	objectValues, err := createValueMap(v)
	a.NoError(err)
	defaultValues, err := createValueMap(def)
	a.NoError(err)

	a.True(isDefaultValue("Bool", objectValues, defaultValues))
	a.True(isDefaultValue("String", objectValues, defaultValues))
	a.False(isDefaultValue("Int", objectValues, defaultValues))
	a.True(isDefaultValue("Missing", objectValues, defaultValues))
}

func TestSaveNonDefaultValues(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "obj.json")
	v := testValue{Version: 3, Bool: true, String: "default", Int: 1}
	def := testValue{Version: 3, Bool: true, String: "default", Int: 2}
	require.NoError(t, SaveNonDefaultValuesToFile(path, v, def, []string{"Version"}))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	require.JSONEq(t, `{"Version": 3, "Int": 1}`, string(raw))

	loaded := def
	require.NoError(t, LoadObjectFromFile(path, &loaded))
	require.Equal(t, v, loaded)
}

func TestCreateValueMapRejectsNested(t *testing.T) {
	t.Parallel()

	_, err := createValueMap(struct{ Inner testValue }{})
	require.Error(t, err)
	_, err = createValueMap(3)
	require.Error(t, err)
}
