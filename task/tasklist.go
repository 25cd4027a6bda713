package task

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
)

// TaskListName is the file the analyzer reads its to-do items from.
const TaskListName = "to_do.txt"

// ReadList reads the task list from <dir>/to_do.txt, one task per non-empty
// line. A missing file is a normal empty result, not an error.
func ReadList(dir string) ([]string, error) {
	f, err := os.Open(filepath.Join(dir, TaskListName))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	defer f.Close()

	var tasks []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			tasks = append(tasks, line)
		}
	}
	return tasks, scanner.Err()
}

// IsAffirmative reports whether the answer is an exact, case-insensitive
// "yes". Anything else counts as a decline.
func IsAffirmative(answer string) bool {
	return strings.EqualFold(strings.TrimSpace(answer), "yes")
}
