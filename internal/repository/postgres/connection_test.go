package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTableNames(t *testing.T) {
	tables := NewTableNames("teacher.")

	assert.Equal(t, "teacher.courses", tables.Courses)
	assert.Equal(t, "teacher.assignments", tables.Assignments)
	assert.Equal(t, "teacher.submissions", tables.Submissions)
	assert.Equal(t, "teacher", tables.Schema())
}

func TestTableNames_SchemaOnlyForQualifiedPrefix(t *testing.T) {
	assert.Equal(t, "", NewTableNames("test_").Schema())
	assert.Equal(t, "", NewTableNames("").Schema())
	assert.Equal(t, "", NewTableNames(".").Schema())
}

func TestStatements(t *testing.T) {
	stmts, err := NewTableNames("student.").Statements(TableSubmissions)
	require.NoError(t, err)

	require.Len(t, stmts, 3)
	assert.Equal(t, "CREATE SCHEMA IF NOT EXISTS student", stmts[0])
	assert.Contains(t, stmts[1], "CREATE TABLE IF NOT EXISTS student.submissions")
	assert.Contains(t, stmts[1], "content       TEXT,")
	assert.Contains(t, stmts[2], "ON student.submissions (student_id")
}

func TestStatements_NoSchemaForPlainPrefix(t *testing.T) {
	stmts, err := NewTableNames("test_").Statements(TableCourses)
	require.NoError(t, err)

	require.Len(t, stmts, 1)
	assert.Contains(t, stmts[0], "test_courses")
}

func TestStatements_UnknownTable(t *testing.T) {
	_, err := NewTableNames("admin.").Statements(Table(99))
	assert.Error(t, err)
}
