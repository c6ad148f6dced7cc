package importer

import (
	"fmt"
	"io"
	"time"

	"github.com/nissyi-gh/taskdeck/internal/model"
	"gopkg.in/yaml.v3"
)

// Creator is the subset of the task store used by Import.
type Creator interface {
	Create(d model.Draft) (model.Task, bool, error)
}

// YAMLTask represents a single task in the YAML document.
type YAMLTask struct {
	ID        int64      `yaml:"id,omitempty"`
	Title     string     `yaml:"title"`
	Category  string     `yaml:"category,omitempty"`
	Priority  string     `yaml:"priority,omitempty"`
	DueDate   string     `yaml:"due_date,omitempty"`
	Completed bool       `yaml:"completed,omitempty"`
	CreatedAt *time.Time `yaml:"created_at,omitempty"`
}

// YAMLDocument represents the root structure of the YAML document.
type YAMLDocument struct {
	Tasks []YAMLTask `yaml:"tasks"`
}

// Result summarizes an import.
type Result struct {
	Created int
	Skipped int
}

// Import parses YAML from r and creates every task with a non-empty title.
// Ids and creation times in the document are ignored; the store assigns new
// ones. Import stops at the first invalid due date or failed write.
func Import(c Creator, r io.Reader) (Result, error) {
	var doc YAMLDocument
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if err == io.EOF {
			return Result{}, fmt.Errorf("no tasks found in YAML")
		}
		return Result{}, fmt.Errorf("YAML parse error: %w", err)
	}
	if len(doc.Tasks) == 0 {
		return Result{}, fmt.Errorf("no tasks found in YAML")
	}

	var res Result
	for i, yt := range doc.Tasks {
		d, err := yt.draft()
		if err != nil {
			return res, fmt.Errorf("task %d %q: %w", i+1, yt.Title, err)
		}
		_, ok, err := c.Create(d)
		if err != nil {
			return res, fmt.Errorf("add task %q: %w", yt.Title, err)
		}
		if !ok {
			res.Skipped++
			continue
		}
		res.Created++
	}
	return res, nil
}

func (yt YAMLTask) draft() (model.Draft, error) {
	category := yt.Category
	if category == "" {
		category = model.DefaultCategory
	}
	priority, ok := model.ParsePriority(yt.Priority)
	if !ok && yt.Priority != "" {
		return model.Draft{}, fmt.Errorf("unknown priority %q", yt.Priority)
	}
	due, err := model.NormalizeDueDate(&yt.DueDate)
	if err != nil {
		return model.Draft{}, fmt.Errorf("invalid due_date %q", yt.DueDate)
	}
	return model.Draft{
		Title:     yt.Title,
		Category:  category,
		Priority:  priority,
		DueDate:   due,
		Completed: yt.Completed,
	}, nil
}

// Export writes tasks to w as a YAML document accepted by Import.
func Export(w io.Writer, tasks []model.Task) error {
	doc := YAMLDocument{Tasks: make([]YAMLTask, 0, len(tasks))}
	for _, t := range tasks {
		yt := YAMLTask{
			ID:        t.ID,
			Title:     t.Title,
			Category:  t.Category,
			Priority:  string(t.Priority),
			Completed: t.Completed,
		}
		if t.DueDate != nil {
			yt.DueDate = *t.DueDate
		}
		if !t.CreatedAt.IsZero() {
			created := t.CreatedAt
			yt.CreatedAt = &created
		}
		doc.Tasks = append(doc.Tasks, yt)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode YAML: %w", err)
	}
	return enc.Close()
}
