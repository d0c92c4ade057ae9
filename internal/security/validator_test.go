package security

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidate_DangerousBash(t *testing.T) {
	v := Validate("rm -rf /tmp/x", "bash")
	assert.False(t, v.Safe)
	assert.Contains(t, v.Reason, "rm -rf")
}

func TestValidate_SafeBash(t *testing.T) {
	v := Validate("echo hi", "bash")
	assert.True(t, v.Safe)
	assert.Empty(t, v.Reason)
}

func TestValidate_CaseInsensitive(t *testing.T) {
	v := Validate("RM -RF /", "BASH")
	assert.False(t, v.Safe)

	v = Validate("OS.SYSTEM('id')", "python")
	assert.False(t, v.Safe)
	assert.Contains(t, v.Reason, "os.system")
}

func TestValidate_FirstMatchNamed(t *testing.T) {
	v := Validate("dd if=/dev/zero; shutdown now", "bash")
	assert.False(t, v.Safe)
	assert.Contains(t, v.Reason, "dd if=")
}

func TestValidate_PerLanguageTables(t *testing.T) {
	assert.False(t, Validate("eval(payload)", "python").Safe)
	assert.False(t, Validate("const cp = require('child_process')", "javascript").Safe)

	// a python pattern is not dangerous in bash
	assert.True(t, Validate("eval(payload)", "bash").Safe)
}

func TestValidate_UnknownLanguage(t *testing.T) {
	// no denylist: only the long-line check applies
	assert.True(t, Validate("DROP TABLE users;", "sql").Safe)
	assert.True(t, Validate("rm -rf /", "cobol").Safe)
}

func TestValidate_LongLineObfuscation(t *testing.T) {
	long := "echo " + strings.Repeat("a", 1001)
	v := Validate(long, "bash")
	assert.False(t, v.Safe)
	assert.Contains(t, v.Reason, "obfuscation")

	// applies even to languages with no denylist
	v = Validate(strings.Repeat("x", 1100), "cobol")
	assert.False(t, v.Safe)

	// exactly at the threshold is fine
	assert.True(t, Validate(strings.Repeat("a", 1000), "bash").Safe)
}
