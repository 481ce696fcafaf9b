// This file is part of intcode - https://github.com/db47h/intcode
//
// Copyright 2019 Denis Bernard <db047h@gmail.com>
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package vm_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/db47h/intcode/vm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	prog, err := vm.Parse(strings.NewReader(" 1, -2 ,\n3,,4\n"))
	require.NoError(t, err)
	assert.Equal(t, ints(1, -2, 3, 4), C(prog))

	prog, err = vm.ParseString("")
	require.NoError(t, err)
	assert.Empty(t, prog)

	_, err = vm.ParseString("1,2,x,4")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "field 3")
}

func TestLoadSave(t *testing.T) {
	prog := C{vm.Int(1), vm.Int(-2), vm.MustParseCell("-170141183460469231731687303715884105728"), vm.Int(99)}
	var b bytes.Buffer
	require.NoError(t, vm.Save(&b, prog))
	assert.Equal(t, "1,-2,-170141183460469231731687303715884105728,99\n", b.String())

	name := filepath.Join(t.TempDir(), "prog.txt")
	require.NoError(t, os.WriteFile(name, b.Bytes(), 0o644))
	got, err := vm.Load(name)
	require.NoError(t, err)
	assert.Equal(t, prog, C(got))

	_, err = vm.Load(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}
