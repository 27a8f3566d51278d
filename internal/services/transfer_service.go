package services

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"tasklist/internal/domain"
	"tasklist/internal/errors"
)

// Format names an exchange format
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatCSV  Format = "csv"
)

var csvHeader = []string{"id", "name", "dateAdded", "completed"}

// ParseFormat parses a --format value
func ParseFormat(value string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "csv":
		return FormatCSV, nil
	default:
		return "", errors.NewInvalidInputError("format", value, "must be json, yaml or csv")
	}
}

// FormatFromPath picks an import format from a file extension, defaulting
// to JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".csv":
		return FormatCSV
	default:
		return FormatJSON
	}
}

// transferServiceImpl implements the TransferService interface
type transferServiceImpl struct {
	mapper *domain.TaskListMapper
}

// NewTransferService creates a new TransferService instance
func NewTransferService() TransferService {
	return &transferServiceImpl{mapper: domain.NewTaskListMapper()}
}

// Export renders the list. JSON output is the stored shape, indented.
func (s *transferServiceImpl) Export(list domain.TaskList, format Format) ([]byte, error) {
	list = list.Clone()

	switch format {
	case FormatJSON:
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		if err := enc.Encode(list); err != nil {
			return nil, errors.NewSerializationError("export json", err)
		}
		return buf.Bytes(), nil
	case FormatYAML:
		data, err := yaml.Marshal(list)
		if err != nil {
			return nil, errors.NewSerializationError("export yaml", err)
		}
		return data, nil
	case FormatCSV:
		var buf bytes.Buffer
		w := csv.NewWriter(&buf)
		rows := make([][]string, 0, len(list)+1)
		rows = append(rows, csvHeader)
		for _, task := range list {
			rows = append(rows, []string{
				strconv.FormatInt(task.ID, 10),
				task.Name,
				task.DateAdded,
				strconv.FormatBool(task.Completed),
			})
		}
		if err := w.WriteAll(rows); err != nil {
			return nil, errors.NewSerializationError("export csv", err)
		}
		return buf.Bytes(), nil
	default:
		return nil, errors.NewInvalidInputError("format", string(format), "must be json, yaml or csv")
	}
}

// Import parses a list previously written by Export, or a raw stored value
func (s *transferServiceImpl) Import(data []byte, format Format) (domain.TaskList, error) {
	switch format {
	case FormatJSON:
		return s.mapper.Decode(data)
	case FormatYAML:
		var list domain.TaskList
		if err := yaml.Unmarshal(data, &list); err != nil {
			return nil, errors.NewSerializationError("import yaml", err)
		}
		if list == nil {
			list = domain.TaskList{}
		}
		return list, nil
	case FormatCSV:
		return s.importCSV(data)
	default:
		return nil, errors.NewInvalidInputError("format", string(format), "must be json, yaml or csv")
	}
}

func (s *transferServiceImpl) importCSV(data []byte) (domain.TaskList, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = len(csvHeader)
	rows, err := r.ReadAll()
	if err != nil {
		return nil, errors.NewSerializationError("import csv", err)
	}

	list := domain.TaskList{}
	for i, row := range rows {
		if i == 0 && strings.EqualFold(row[0], csvHeader[0]) {
			continue
		}
		id, err := strconv.ParseInt(row[0], 10, 64)
		if err != nil {
			return nil, errors.NewSerializationError("read csv line "+strconv.Itoa(i+1), err)
		}
		completed, err := strconv.ParseBool(row[3])
		if err != nil {
			return nil, errors.NewSerializationError("read csv line "+strconv.Itoa(i+1), err)
		}
		list = append(list, domain.Task{ID: id, Name: row[1], DateAdded: row[2], Completed: completed})
	}
	return list, nil
}
