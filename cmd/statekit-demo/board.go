package main

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/luma-ui/statekit/mutation"
	"github.com/luma-ui/statekit/observe"
	"github.com/luma-ui/statekit/store"
)

// Task is a single item on the board.
type Task struct {
	ID    int
	Title string
	Done  bool
}

type filterMode int

const (
	filterAll filterMode = iota
	filterOpen
	filterDone
)

func (f filterMode) String() string {
	switch f {
	case filterOpen:
		return "open"
	case filterDone:
		return "done"
	default:
		return "all"
	}
}

// BoardState is the primary state of the board store.
type BoardState struct {
	Tasks  []Task
	Filter filterMode
	Cursor int
}

// BoardStats is a derived secondary state recomputed on every write.
type BoardStats struct {
	Total int
	Open  int
	Done  int
}

var statsKind = store.DefineKind[BoardStats]("board.stats")

// Profile is the payload of the simulated async profile load.
type Profile struct {
	Name   string
	Email  string
	Joined time.Time
}

// Board is the view-model driving the demo UI. All task methods run on the
// update loop, which keeps the single-writer discipline of the store.
type Board struct {
	writer *store.Writer[BoardState]

	// Profile simulates a remote fetch with a configurable delay. Every
	// failEvery-th call fails so all lifecycle states show up in the UI.
	Profile *mutation.Mutation[*Profile]

	nextID   int
	attempts atomic.Int64
}

// NewBoard builds the board store with a few seed tasks.
func NewBoard(cfg demoConfig) *Board {
	b := &Board{nextID: 1}
	_, w := store.New("board", BoardState{})
	b.writer = w

	delay := cfg.ProfileDelay
	failEvery := cfg.FailEvery
	b.Profile = mutation.New(func(ctx context.Context) (*Profile, error) {
		attempt := b.attempts.Add(1)
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
		if failEvery > 0 && attempt%int64(failEvery) == 0 {
			return nil, fmt.Errorf("profile service unavailable (attempt %d)", attempt)
		}
		return &Profile{
			Name:   "Ada Lovelace",
			Email:  "ada@example.com",
			Joined: time.Date(2021, time.March, 14, 0, 0, 0, 0, time.UTC),
		}, nil
	})

	for _, title := range []string{"wire the store", "render the board", "ship it"} {
		b.AddTask(title)
	}
	return b
}

// Store exposes the read side for the UI.
func (b *Board) Store() *store.Store[BoardState] {
	return b.writer.Store()
}

// Dispose releases the underlying store. Scopes call this on Close.
func (b *Board) Dispose() {
	b.Store().Dispose()
}

// Watch subscribes the UI render loop to board changes.
func (b *Board) Watch(ctx context.Context) *observe.Feed[observe.Change] {
	return b.Store().Watch(ctx, 16)
}

func (b *Board) AddTask(title string) {
	id := b.nextID
	b.nextID++
	b.writer.Update(func(s BoardState) BoardState {
		tasks := append(append([]Task(nil), s.Tasks...), Task{ID: id, Title: title})
		s.Tasks = tasks
		s.Cursor = len(b.visible(s)) - 1
		return clampCursor(s)
	})
	b.refreshStats()
}

// ToggleDone flips the task under the cursor, if any.
func (b *Board) ToggleDone() {
	b.writer.Update(func(s BoardState) BoardState {
		visible := b.visible(s)
		if s.Cursor < 0 || s.Cursor >= len(visible) {
			return s
		}
		id := visible[s.Cursor].ID
		tasks := append([]Task(nil), s.Tasks...)
		for i := range tasks {
			if tasks[i].ID == id {
				tasks[i].Done = !tasks[i].Done
			}
		}
		s.Tasks = tasks
		return clampCursor(s)
	})
	b.refreshStats()
}

func (b *Board) MoveCursor(delta int) {
	b.writer.Update(func(s BoardState) BoardState {
		s.Cursor += delta
		return clampCursor(s)
	})
}

func (b *Board) CycleFilter() {
	b.writer.Update(func(s BoardState) BoardState {
		s.Filter = (s.Filter + 1) % 3
		return clampCursor(s)
	})
}

// VisibleTasks returns the tasks matching the current filter.
func (b *Board) VisibleTasks() []Task {
	return b.visible(b.Store().State())
}

func (b *Board) visible(s BoardState) []Task {
	if s.Filter == filterAll {
		return s.Tasks
	}
	var out []Task
	for _, t := range s.Tasks {
		if (s.Filter == filterDone) == t.Done {
			out = append(out, t)
		}
	}
	return out
}

func (b *Board) refreshStats() {
	s := b.Store().State()
	stats := BoardStats{Total: len(s.Tasks)}
	for _, t := range s.Tasks {
		if t.Done {
			stats.Done++
		} else {
			stats.Open++
		}
	}
	store.Put(b.writer, statsKind, stats)
}

func clampCursor(s BoardState) BoardState {
	visible := 0
	for _, t := range s.Tasks {
		if s.Filter == filterAll || (s.Filter == filterDone) == t.Done {
			visible++
		}
	}
	if s.Cursor >= visible {
		s.Cursor = visible - 1
	}
	if s.Cursor < 0 {
		s.Cursor = 0
	}
	return s
}
