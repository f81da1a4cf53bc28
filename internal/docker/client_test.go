package docker

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseEnv(t *testing.T) {
	env := []string{
		"MYSQL_USER=app",
		"MYSQL_PASSWORD=s3cret",
		"EMPTY=",
		"EQUALS_IN_VALUE=a=b=c",
	}

	result := parseEnv("db", env)

	assert.Equal(t, "app", result["MYSQL_USER"])
	assert.Equal(t, "s3cret", result["MYSQL_PASSWORD"])
	assert.Equal(t, "", result["EMPTY"])
	assert.Equal(t, "a=b=c", result["EQUALS_IN_VALUE"])
}

func TestParseEnv_SkipsMalformedEntries(t *testing.T) {
	result := parseEnv("db", []string{"NO_SEPARATOR", "VALID=yes"})

	assert.Len(t, result, 1)
	assert.Equal(t, "yes", result["VALID"])
}

func TestParseEnv_Empty(t *testing.T) {
	assert.Empty(t, parseEnv("db", nil))
}

func TestFlattenEnv(t *testing.T) {
	result := flattenEnv(map[string]string{"MYSQL_PWD": "s3cret"})

	assert.Equal(t, []string{"MYSQL_PWD=s3cret"}, result)
}

func TestFlattenEnv_Empty(t *testing.T) {
	assert.Nil(t, flattenEnv(nil))
	assert.Nil(t, flattenEnv(map[string]string{}))
}
