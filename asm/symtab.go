// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asm

import (
	"strings"

	"github.com/beevik/asm6502/parser"
)

// Define a label at the current program counter. A label starting with
// the '@' marker is local to the most recently defined global label;
// any other label becomes the new scope owner.
//
// Uniqueness is enforced only during the label-collection pass. Pass 2
// re-assigns the same labels deterministically and must not re-check.
func (a *assembler) defineLabel(st *parser.Label) error {
	if strings.HasPrefix(st.Name, "@") {
		return a.defineLocalLabel(st)
	}

	if a.pass == collectingLabels {
		if _, found := a.globals[st.Name]; found {
			return a.duplicateLabel(st.At, st.Name)
		}
	}

	a.globals[st.Name] = a.pc
	a.scope = st.Name
	a.log("%-15s Addr:$%04X", st.Name, a.pc)
	return nil
}

// Define a local label inside the current scope. The scope's local map
// is created lazily.
func (a *assembler) defineLocalLabel(st *parser.Label) error {
	if a.scope == "" {
		return a.undefinedLocalScope(st.At, st.Name)
	}

	m := a.locals[a.scope]
	if m == nil {
		m = make(map[string]int)
		a.locals[a.scope] = m
	}

	if a.pass == collectingLabels {
		if _, found := m[st.Name]; found {
			return a.duplicateLabel(st.At, a.scope+st.Name)
		}
	}

	m[st.Name] = a.pc
	a.log("%-15s Addr:$%04X (scope %s)", st.Name, a.pc, a.scope)
	return nil
}

// Define a constant from a "name = value" statement. The defining
// expression is kept and resolved on demand; pass 2 redefines each
// constant with an identical result.
func (a *assembler) defineConstant(st *parser.Equate) error {
	a.constants[st.Name] = st.Value
	a.log("%-15s = %s", st.Name, exprString(st.Value))
	return nil
}

// Resolve a bare name to a value. Names starting with the local-scope
// marker consult the current scope's local map only. For other names,
// constants take precedence over global labels.
func (a *assembler) resolveName(name string) (int, bool) {
	if strings.HasPrefix(name, "@") {
		if a.scope == "" {
			return 0, false
		}
		v, ok := a.locals[a.scope][name]
		return v, ok
	}

	if e, ok := a.constants[name]; ok {
		if a.resolving[name] {
			return 0, false // self-referential constant
		}
		a.resolving[name] = true
		v, ok := a.resolveExpr(e)
		delete(a.resolving, name)
		return v, ok
	}

	v, ok := a.globals[name]
	return v, ok
}
