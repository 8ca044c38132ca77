package vault

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// MaxJSONLLineCapacity is the maximum buffer size for reading JSONL
// lines (1MB per line).
const MaxJSONLLineCapacity = 1024 * 1024

// Connection is an undirected edge between two vault papers.
type Connection struct {
	Source    string    `json:"source"`
	Target    string    `json:"target"`
	Reason    string    `json:"reason"`
	CreatedAt time.Time `json:"created_at"`
}

// Connection validation errors.
var (
	ErrSelfConnection      = errors.New("connection endpoints cannot be the same paper")
	ErrDuplicateConnection = errors.New("connection already exists")
	ErrEmptyReason         = errors.New("connection reason is required")
)

// connectionsPath returns the absolute path of the connections file.
func (v *Vault) connectionsPath() string {
	return filepath.Join(v.Root, ConnectionsFile)
}

// Connections reads all connections from the vault.
func (v *Vault) Connections() ([]Connection, error) {
	f, err := os.Open(v.connectionsPath())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening connections file: %w", err)
	}
	defer f.Close()

	var conns []Connection
	scanner := bufio.NewScanner(f)
	buf := make([]byte, MaxJSONLLineCapacity)
	scanner.Buffer(buf, MaxJSONLLineCapacity)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var c Connection
		if err := json.Unmarshal(line, &c); err != nil {
			return nil, fmt.Errorf("parsing connection at line %d: %w", lineNum, err)
		}
		conns = append(conns, c)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading connections file: %w", err)
	}
	return conns, nil
}

// ConnectionsFor returns the connections touching citekey, as source
// or target.
func (v *Vault) ConnectionsFor(citekey string) ([]Connection, error) {
	all, err := v.Connections()
	if err != nil {
		return nil, err
	}
	var conns []Connection
	for _, c := range all {
		if c.Source == citekey || c.Target == citekey {
			conns = append(conns, c)
		}
	}
	return conns, nil
}

// AddConnection creates an undirected edge between two existing
// papers. A duplicate edge in either direction is rejected.
func (v *Vault) AddConnection(source, target, reason string) (*Connection, error) {
	if source == target {
		return nil, ErrSelfConnection
	}
	if reason == "" {
		return nil, ErrEmptyReason
	}
	if _, err := v.Get(source); err != nil {
		return nil, err
	}
	if _, err := v.Get(target); err != nil {
		return nil, err
	}

	existing, err := v.Connections()
	if err != nil {
		return nil, err
	}
	for _, c := range existing {
		if (c.Source == source && c.Target == target) ||
			(c.Source == target && c.Target == source) {
			return nil, fmt.Errorf("%w: %s <-> %s", ErrDuplicateConnection, source, target)
		}
	}

	conn := Connection{
		Source:    source,
		Target:    target,
		Reason:    reason,
		CreatedAt: time.Now().UTC(),
	}

	f, err := os.OpenFile(v.connectionsPath(), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("opening connections file for append: %w", err)
	}
	defer f.Close()

	data, err := json.Marshal(conn)
	if err != nil {
		return nil, fmt.Errorf("encoding connection: %w", err)
	}
	if _, err := f.Write(append(data, '\n')); err != nil {
		return nil, fmt.Errorf("writing connection: %w", err)
	}
	return &conn, nil
}
