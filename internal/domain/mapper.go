package domain

import (
	"bytes"
	"encoding/json"

	"tasklist/internal/errors"
	"tasklist/internal/repository/sqlite"
)

// TaskListMapper handles conversion between a TaskList and the stored
// key-value record holding its JSON array.
type TaskListMapper struct{}

// NewTaskListMapper creates a new TaskListMapper instance.
func NewTaskListMapper() *TaskListMapper {
	return &TaskListMapper{}
}

// Encode serializes the list as a compact JSON array with <, > and & left
// unescaped. An empty list encodes as [].
func (m *TaskListMapper) Encode(list TaskList) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(list.Clone()); err != nil {
		return nil, errors.NewSerializationError("encode task list", err)
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// Decode parses a JSON array of tasks. A JSON null decodes to an empty list.
func (m *TaskListMapper) Decode(data []byte) (TaskList, error) {
	var list TaskList
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, errors.NewSerializationError("decode task list", err)
	}
	if list == nil {
		list = TaskList{}
	}
	return list, nil
}

// ToRecord converts a TaskList to a record stored under key.
func (m *TaskListMapper) ToRecord(key string, list TaskList) (*sqlite.Record, error) {
	data, err := m.Encode(list)
	if err != nil {
		return nil, err
	}
	return &sqlite.Record{Key: key, Value: string(data)}, nil
}

// FromRecord converts a stored record back to a TaskList.
func (m *TaskListMapper) FromRecord(record *sqlite.Record) (TaskList, error) {
	return m.Decode([]byte(record.Value))
}
