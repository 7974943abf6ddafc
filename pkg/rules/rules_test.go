// Copyright 2025 walteh LLC
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

package rules

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/importshift/pkg/text"
)

func apply(t *testing.T, m *Manifest, content string) (string, bool) {
	t.Helper()
	result, err := text.NewSimpleTextReplacer().ReplaceText(context.Background(), strings.NewReader(content), m.Rules)
	require.NoError(t, err)
	return string(result.ModifiedContent), result.WasModified
}

func TestDefault(t *testing.T) {
	m, err := Default()
	require.NoError(t, err)

	assert.Equal(t, []string{"**/*.tsx", "**/*.ts"}, m.Files)
	require.Len(t, m.Rules, 13)

	want := map[string]string{
		"@/components/":        "@/client/components/",
		"@/contexts/":          "@/client/contexts/",
		"@/hooks/":             "@/client/hooks/",
		"@/lib/auth":           "@/client/lib/auth",
		"@/lib/firebase":       "@/client/lib/firebase",
		"@/lib/firebaseClient": "@/client/lib/firebaseClient",
		"@/lib/utils":          "@/client/lib/utils",
		"@/lib/pdfUtils":       "@/server/lib/pdfUtils",
		"@/lib/firebase-admin": "@/server/lib/firebase-admin",
		"@/lib/firebaseAdmin":  "@/server/lib/firebaseAdmin",
		"@/services/client":    "@/client/services",
		"@/services/server":    "@/server/services",
		"@/types":              "@/shared/types",
	}
	got := make(map[string]string, len(m.Rules))
	for _, r := range m.Rules {
		got[r.FromText] = r.ToText
	}
	assert.Equal(t, want, got)
}

func TestDefaultRewrites(t *testing.T) {
	m, err := Default()
	require.NoError(t, err)

	tests := []struct {
		name    string
		content string
		want    string
	}{
		{
			name:    "firebase_admin_goes_to_server",
			content: `import admin from "@/lib/firebase-admin"`,
			want:    `import admin from "@/server/lib/firebase-admin"`,
		},
		{
			name:    "firebase_admin_camel_goes_to_server",
			content: `import { db } from "@/lib/firebaseAdmin"`,
			want:    `import { db } from "@/server/lib/firebaseAdmin"`,
		},
		{
			name:    "firebase_client",
			content: `import { app } from "@/lib/firebaseClient"`,
			want:    `import { app } from "@/client/lib/firebaseClient"`,
		},
		{
			name:    "firebase",
			content: `import { auth } from "@/lib/firebase"`,
			want:    `import { auth } from "@/client/lib/firebase"`,
		},
		{
			name:    "pdf_utils_goes_to_server",
			content: `import { render } from "@/lib/pdfUtils"`,
			want:    `import { render } from "@/server/lib/pdfUtils"`,
		},
		{
			name:    "services",
			content: "\"@/services/client/quotes\"\n\"@/services/server/invoices\"",
			want:    "\"@/client/services/quotes\"\n\"@/server/services/invoices\"",
		},
		{
			name:    "components_and_types",
			content: "import x from \"@/components/Button\"\nimport { T } from \"@/types\"\n",
			want:    "import x from \"@/client/components/Button\"\nimport { T } from \"@/shared/types\"\n",
		},
		{
			name:    "contexts_hooks_auth_utils",
			content: `"@/contexts/auth-context" "@/hooks/useFirebase" "@/lib/auth" "@/lib/utils"`,
			want:    `"@/client/contexts/auth-context" "@/client/hooks/useFirebase" "@/client/lib/auth" "@/client/lib/utils"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, modified := apply(t, m, tt.content)
			assert.True(t, modified)
			assert.Equal(t, tt.want, got)

			again, modified := apply(t, m, got)
			assert.False(t, modified, "second pass should be a no-op")
			assert.Equal(t, got, again)
		})
	}
}

func TestDefaultLeavesUnrelatedImports(t *testing.T) {
	m, err := Default()
	require.NoError(t, err)

	got, modified := apply(t, m, `import React from "react"`)
	assert.False(t, modified)
	assert.Equal(t, `import React from "react"`, got)
}

func TestParse(t *testing.T) {
	tests := []struct {
		name      string
		data      string
		wantError string
	}{
		{
			name: "valid",
			data: `
files: ["**/*.go"]
rules:
  - from: old/pkg
    to: new/pkg
`,
		},
		{
			name:      "unknown_field",
			data:      "files: [\"*.go\"]\nrules: [{from: a, to: b}]\nextra: true\n",
			wantError: "parsing YAML",
		},
		{
			name:      "no_files",
			data:      "rules: [{from: a, to: b}]\n",
			wantError: "at least one file pattern is required",
		},
		{
			name:      "bad_pattern",
			data:      "files: [\"src/[\"]\nrules: [{from: a, to: b}]\n",
			wantError: "is not a valid pattern",
		},
		{
			name:      "no_rules",
			data:      "files: [\"*.go\"]\n",
			wantError: "at least one rule is required",
		},
		{
			name: "shadowed_rule",
			data: `
files: ["**/*.ts"]
rules:
  - {from: "@/lib/firebase", to: "@/client/lib/firebase"}
  - {from: "@/lib/firebase-admin", to: "@/server/lib/firebase-admin"}
`,
			wantError: "is shadowed by rule 0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := Parse([]byte(tt.data))
			if tt.wantError != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantError)
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, m.Rules)
		})
	}
}
