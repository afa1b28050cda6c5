// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package runbatch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
)

var errFakeExit = errors.New("exit status 1")

// attempt scripts one spawn of a fake command.
type attempt struct {
	stdout   string
	stderr   string
	exitErr  error // returned by Wait
	spawnErr error // returned by Spawn
	delay    time.Duration
}

// fakeSpawner plays scripted attempts keyed by argv[0] and records the spawn/settle order.
type fakeSpawner struct {
	mu        sync.Mutex
	scripts   map[string][]attempt
	calls     map[string]int
	events    []string
	active    int
	maxActive int

	// gate, when set, holds every Wait until it is closed. It is closed once gateAt spawns happened.
	gate   chan struct{}
	gateAt int
	spawns int
}

func newFakeSpawner(scripts map[string][]attempt) *fakeSpawner {
	return &fakeSpawner{
		scripts: scripts,
		calls:   make(map[string]int),
	}
}

func (f *fakeSpawner) Spawn(_ context.Context, argv []string, _ SpawnOptions) (Process, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	name := argv[0]
	script := f.scripts[name]
	n := f.calls[name]
	f.calls[name] = n + 1

	a := attempt{}
	if len(script) > 0 {
		a = script[min(n, len(script)-1)]
	}

	if a.spawnErr != nil {
		return nil, a.spawnErr
	}

	f.events = append(f.events, "spawn:"+name)
	f.active++
	f.maxActive = max(f.maxActive, f.active)
	f.spawns++

	if f.gate != nil && f.spawns == f.gateAt {
		close(f.gate)
	}

	return &fakeProcess{
		spawner: f,
		name:    name,
		stdout:  strings.NewReader(a.stdout),
		stderr:  strings.NewReader(a.stderr),
		err:     a.exitErr,
		delay:   a.delay,
	}, nil
}

func (f *fakeSpawner) settled(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.events = append(f.events, "settle:"+name)
	f.active--
}

func (f *fakeSpawner) callCount(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.calls[name]
}

func (f *fakeSpawner) eventLog() []string {
	f.mu.Lock()
	defer f.mu.Unlock()

	return append([]string(nil), f.events...)
}

type fakeProcess struct {
	spawner *fakeSpawner
	name    string
	stdout  io.Reader
	stderr  io.Reader
	err     error
	delay   time.Duration
}

func (p *fakeProcess) Stdout() io.Reader { return p.stdout }

func (p *fakeProcess) Stderr() io.Reader { return p.stderr }

func (p *fakeProcess) Wait() error {
	defer p.spawner.settled(p.name)

	if gate := p.spawner.gate; gate != nil {
		select {
		case <-gate:
		case <-time.After(2 * time.Second):
			return fmt.Errorf("%s: gate never opened", p.name)
		}
	}

	time.Sleep(p.delay)

	return p.err
}

func cmd(name string, retries int) Command {
	return Command{Name: name, Argv: []string{name, "arg"}, RetryCount: retries}
}
