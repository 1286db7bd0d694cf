package ui

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// TaskStatus represents the status of a pipeline stage
type TaskStatus int

const (
	TaskPending TaskStatus = iota
	TaskRunning
	TaskDone
	TaskFailed
	TaskSkipped
)

// Task is a single stage shown in the workflow
type Task struct {
	Name    string
	Status  TaskStatus
	Message string
	Details string // shown next to the name once the task is done
}

// Workflow renders a list of pipeline stages with a spinner on the running
// one. All methods are safe to call from the converter's progress callback.
type Workflow struct {
	writer     io.Writer
	title      string
	tasks      []*Task
	mu         sync.Mutex
	spinnerIdx int
	stopChan   chan struct{}
	running    bool
	lastRender string
	startTime  time.Time
}

// NewWorkflow creates a new workflow tracker
func NewWorkflow(w io.Writer, title string) *Workflow {
	return &Workflow{
		writer:   w,
		title:    title,
		tasks:    make([]*Task, 0),
		stopChan: make(chan struct{}),
	}
}

// AddTask appends a stage and returns its index
func (wf *Workflow) AddTask(name string) int {
	wf.mu.Lock()
	defer wf.mu.Unlock()

	wf.tasks = append(wf.tasks, &Task{Name: name, Status: TaskPending})
	return len(wf.tasks) - 1
}

func (wf *Workflow) update(idx int, fn func(*Task)) {
	wf.mu.Lock()
	defer wf.mu.Unlock()

	if idx >= 0 && idx < len(wf.tasks) {
		fn(wf.tasks[idx])
	}
}

// StartTask marks a task as running
func (wf *Workflow) StartTask(idx int, message string) {
	wf.update(idx, func(t *Task) {
		t.Status = TaskRunning
		t.Message = message
	})
}

// CompleteTask marks a task as done
func (wf *Workflow) CompleteTask(idx int, details string) {
	wf.update(idx, func(t *Task) {
		t.Status = TaskDone
		t.Details = details
	})
}

// FailTask marks a task as failed
func (wf *Workflow) FailTask(idx int, errMsg string) {
	wf.update(idx, func(t *Task) {
		t.Status = TaskFailed
		t.Message = errMsg
	})
}

// SkipTask marks a task as skipped
func (wf *Workflow) SkipTask(idx int, reason string) {
	wf.update(idx, func(t *Task) {
		t.Status = TaskSkipped
		t.Message = reason
	})
}

// UpdateMessage replaces the message of a task
func (wf *Workflow) UpdateMessage(idx int, message string) {
	wf.update(idx, func(t *Task) { t.Message = message })
}

// Start begins the spinner animation
func (wf *Workflow) Start() {
	wf.mu.Lock()
	if wf.running {
		wf.mu.Unlock()
		return
	}
	wf.running = true
	wf.startTime = time.Now()
	if wf.title != "" {
		fmt.Fprintln(wf.writer, Title.Render(wf.title))
	}
	wf.mu.Unlock()

	go func() {
		ticker := time.NewTicker(80 * time.Millisecond)
		defer ticker.Stop()

		for {
			select {
			case <-wf.stopChan:
				return
			case <-ticker.C:
				wf.mu.Lock()
				wf.spinnerIdx = (wf.spinnerIdx + 1) % len(spinnerFrames)
				wf.mu.Unlock()
				wf.render()
			}
		}
	}()
}

// Stop ends the animation and prints the final state of every task
func (wf *Workflow) Stop() {
	wf.mu.Lock()
	if !wf.running {
		wf.mu.Unlock()
		return
	}
	wf.running = false
	wf.mu.Unlock()

	close(wf.stopChan)
	wf.renderFinal()
}

// Elapsed returns the time since Start
func (wf *Workflow) Elapsed() time.Duration {
	wf.mu.Lock()
	defer wf.mu.Unlock()
	if wf.startTime.IsZero() {
		return 0
	}
	return time.Since(wf.startTime)
}

// clearPrevious returns the escape sequence erasing the last rendered frame.
// Callers hold wf.mu.
func (wf *Workflow) clearPrevious() string {
	if wf.lastRender == "" {
		return ""
	}
	lines := strings.Count(wf.lastRender, "\n") + 1
	return strings.Repeat("\033[A\033[K", lines)
}

func (wf *Workflow) render() {
	wf.mu.Lock()
	defer wf.mu.Unlock()

	var b strings.Builder
	for _, task := range wf.tasks {
		b.WriteString(wf.renderTask(task, false))
		b.WriteString("\n")
	}

	frame := b.String()
	fmt.Fprint(wf.writer, wf.clearPrevious()+frame)
	wf.lastRender = strings.TrimSuffix(frame, "\n")
}

func (wf *Workflow) renderFinal() {
	wf.mu.Lock()
	defer wf.mu.Unlock()

	var b strings.Builder
	b.WriteString(wf.clearPrevious())
	for _, task := range wf.tasks {
		b.WriteString(wf.renderTask(task, true))
		b.WriteString("\n")
	}
	wf.lastRender = ""
	fmt.Fprint(wf.writer, b.String())
}

func (wf *Workflow) renderTask(task *Task, final bool) string {
	var icon string
	var nameStyle, msgStyle styleWrapper

	switch task.Status {
	case TaskRunning:
		if final {
			icon, nameStyle, msgStyle = Muted.Render("○"), StepPending, Dim
			break
		}
		icon, nameStyle, msgStyle = Secondary.Render(spinnerFrames[wf.spinnerIdx]), StepRunning, Secondary
	case TaskDone:
		icon, nameStyle, msgStyle = GetCheckMark(), StepComplete, Dim
	case TaskFailed:
		icon, nameStyle, msgStyle = GetCrossMark(), StepFailed, Error
	case TaskSkipped:
		icon, nameStyle, msgStyle = Warning.Render("⊘"), StepSkipped, Warning
	default:
		icon, nameStyle, msgStyle = Muted.Render("○"), StepPending, Dim
	}

	line := fmt.Sprintf("%s %s", icon, nameStyle.Render(task.Name))
	if !final {
		if task.Message != "" {
			line += " " + msgStyle.Render(task.Message)
		}
		return line
	}

	switch {
	case task.Status == TaskDone && task.Details != "":
		line += " " + Dim.Render("→ "+task.Details)
	case task.Status == TaskFailed && task.Message != "":
		line += " " + Error.Render("→ "+task.Message)
	case task.Status == TaskSkipped && task.Message != "":
		line += " " + Warning.Render("→ "+task.Message)
	}
	return line
}
