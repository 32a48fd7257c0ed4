package casing

import (
	"testing"

	"github.com/misha-mad/vercel-rpc-sub000/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitWords(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"firstName", []string{"first", "Name"}},
		{"HTTPSPort", []string{"HTTPS", "Port"}},
		{"userID", []string{"user", "ID"}},
		{"created_at_ms", []string{"created", "at", "ms"}},
		{"UserLogin", []string{"User", "Login"}},
		{"system-error", []string{"system", "error"}},
		{"Sha256Hash", []string{"Sha256", "Hash"}},
		{"ABC", []string{"ABC"}},
		{"x", []string{"x"}},
		{"__leading", []string{"leading"}},
		{"", nil},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitWords(tt.input))
		})
	}
}

func TestApply(t *testing.T) {
	tests := []struct {
		rule  Rule
		input string
		want  string
	}{
		{Lower, "UserLogin", "userlogin"},
		{Upper, "UserLogin", "USERLOGIN"},
		{Pascal, "user_login", "UserLogin"},
		{Camel, "user_login", "userLogin"},
		{Camel, "UserLogin", "userLogin"},
		{Snake, "UserLogin", "user_login"},
		{Snake, "HTTPSPort", "https_port"},
		{ScreamingSnake, "my_field", "MY_FIELD"},
		{Kebab, "UserLogin", "user-login"},
		{Kebab, "SystemError", "system-error"},
		{ScreamingKebab, "user_login", "USER-LOGIN"},
		{RuleNone, "user_login", "user_login"},
		{Pascal, "active", "Active"},
		{Camel, "ID", "id"},
	}

	for _, tt := range tests {
		t.Run(tt.rule.String()+"/"+tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, Apply(tt.rule, tt.input))
		})
	}
}

func TestApplyEmptyInput(t *testing.T) {
	for rule := range ruleNames {
		assert.Equal(t, "", Apply(rule, ""), rule.String())
	}
	assert.Equal(t, "", Apply(RuleNone, ""))
}

func TestToCamelCase(t *testing.T) {
	assert.Equal(t, "uptimeSecs", ToCamelCase("uptime_secs"))
	assert.Equal(t, "createdAtMs", ToCamelCase("created_at_ms"))
	assert.Equal(t, "name", ToCamelCase("name"))
	assert.Equal(t, "", ToCamelCase(""))
	assert.Equal(t, "UserId", ToPascalCase("user_id"))
	assert.Equal(t, "page_x", ToSnakeCase("pageX"))
}

func TestParseRule(t *testing.T) {
	for _, name := range RuleNames() {
		rule, err := ParseRule(name)
		require.NoError(t, err, name)
		assert.Equal(t, name, rule.String())
	}

	_, err := ParseRule("Train-Case")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrUnknownRenameRule))
}

func TestRuleText(t *testing.T) {
	b, err := Camel.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "camelCase", string(b))

	var r Rule
	require.NoError(t, r.UnmarshalText([]byte("kebab-case")))
	assert.Equal(t, Kebab, r)
	require.NoError(t, r.UnmarshalText(nil))
	assert.Equal(t, RuleNone, r)
	assert.Error(t, r.UnmarshalText([]byte("nope")))
}

func TestPolicy(t *testing.T) {
	p, err := ParsePolicy("camelCase")
	require.NoError(t, err)
	assert.Equal(t, "pageX", p.Apply("page_x"))

	p, err = ParsePolicy("")
	require.NoError(t, err)
	assert.Equal(t, PolicyPreserve, p)
	assert.Equal(t, "page_x", p.Apply("page_x"))

	_, err = ParsePolicy("snake")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrInvalidConfig))
}
