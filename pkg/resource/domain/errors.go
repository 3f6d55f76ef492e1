package domain

import "fmt"

// 目录领域错误

// ErrTableNotFound 表不存在错误
type ErrTableNotFound struct {
	TableName string
}

func (e *ErrTableNotFound) Error() string {
	return fmt.Sprintf("table %s not found", e.TableName)
}

// ErrColumnNotFound 列不存在错误
type ErrColumnNotFound struct {
	ColumnName string
	TableName  string
}

func (e *ErrColumnNotFound) Error() string {
	return fmt.Sprintf("column %s not found in table %s", e.ColumnName, e.TableName)
}

// NewErrTableNotFound 创建表不存在错误
func NewErrTableNotFound(tableName string) *ErrTableNotFound {
	return &ErrTableNotFound{TableName: tableName}
}

// NewErrColumnNotFound 创建列不存在错误
func NewErrColumnNotFound(tableName, columnName string) *ErrColumnNotFound {
	return &ErrColumnNotFound{TableName: tableName, ColumnName: columnName}
}
