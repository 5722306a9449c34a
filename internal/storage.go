package internal

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"
)

// ErrNoActiveSession is returned by Store.Active when no session has been selected.
var ErrNoActiveSession = errors.New("no active session")

// storeFile is the on-disk layout. Each session is a map of base64 encoded,
// individually encrypted fields.
type storeFile struct {
	Active   string                       `json:"active,omitempty"`
	Sessions map[string]map[string]string `json:"sessions"`
}

// Store keeps named sessions encrypted in a single JSON file and remembers
// which one is active.
type Store struct {
	Path string
	key  []byte
}

// NewStore returns a store at path whose fields are sealed with secret.
func NewStore(path, secret string) *Store {
	return &Store{Path: path, key: []byte(secret)}
}

// Save encrypts and stores sess under its name, replacing any previous entry.
func (s *Store) Save(sess *Session) error {
	if err := ValidateSessionName(sess.Name); err != nil {
		return err
	}

	data, err := s.read()
	if err != nil {
		return err
	}

	fields := map[string]string{
		"AccessKeyID":     sess.AccessKeyID,
		"SecretAccessKey": sess.SecretAccessKey,
		"SessionToken":    sess.SessionToken,
		"Region":          sess.Region,
		"RoleARN":         sess.RoleARN,
		"SourceProfile":   sess.SourceProfile,
	}
	if !sess.Expiration.IsZero() {
		fields["Expiration"] = sess.Expiration.Format(time.RFC3339)
	}

	encrypted := make(map[string]string, len(fields))
	for name, value := range fields {
		enc, err := Encrypt([]byte(value), s.key)
		if err != nil {
			return fmt.Errorf("failed to encrypt %s: %w", name, err)
		}
		encrypted[name] = base64.StdEncoding.EncodeToString(enc)
	}

	data.Sessions[sess.Name] = encrypted
	return s.write(data)
}

// Load decrypts the session stored under name.
func (s *Store) Load(name string) (*Session, error) {
	data, err := s.read()
	if err != nil {
		return nil, err
	}
	enc, ok := data.Sessions[name]
	if !ok {
		return nil, fmt.Errorf("session '%s' not found", name)
	}
	return s.decode(name, enc)
}

// List returns every stored session sorted by name.
func (s *Store) List() ([]*Session, error) {
	data, err := s.read()
	if err != nil {
		return nil, err
	}

	sessions := make([]*Session, 0, len(data.Sessions))
	for name, enc := range data.Sessions {
		sess, err := s.decode(name, enc)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, sess)
	}
	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].Name < sessions[j].Name
	})
	return sessions, nil
}

// Names lists stored session names without decrypting anything.
func (s *Store) Names() ([]string, error) {
	data, err := s.read()
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(data.Sessions))
	for name := range data.Sessions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Remove deletes a stored session. Removing the active session clears the
// selection; removing the last session deletes the file.
func (s *Store) Remove(name string) error {
	data, err := s.read()
	if err != nil {
		return err
	}
	if _, ok := data.Sessions[name]; !ok {
		return fmt.Errorf("session '%s' not found", name)
	}

	delete(data.Sessions, name)
	if data.Active == name {
		data.Active = ""
	}

	if len(data.Sessions) == 0 {
		return os.Remove(s.Path)
	}
	return s.write(data)
}

// SetActive marks name as the session modules run under.
func (s *Store) SetActive(name string) error {
	data, err := s.read()
	if err != nil {
		return err
	}
	if _, ok := data.Sessions[name]; !ok {
		return fmt.Errorf("session '%s' not found", name)
	}
	data.Active = name
	return s.write(data)
}

// ActiveName returns the name of the active session, or "" if none is set.
func (s *Store) ActiveName() (string, error) {
	data, err := s.read()
	if err != nil {
		return "", err
	}
	return data.Active, nil
}

// Active loads the active session.
func (s *Store) Active() (*Session, error) {
	name, err := s.ActiveName()
	if err != nil {
		return nil, err
	}
	if name == "" {
		return nil, ErrNoActiveSession
	}
	return s.Load(name)
}

func (s *Store) decode(name string, enc map[string]string) (*Session, error) {
	field := func(key string) (string, error) {
		raw, ok := enc[key]
		if !ok {
			return "", nil
		}
		b, err := base64.StdEncoding.DecodeString(raw)
		if err != nil {
			return "", fmt.Errorf("session '%s': corrupt %s: %w", name, key, err)
		}
		plain, err := Decrypt(b, s.key)
		if err != nil {
			return "", fmt.Errorf("session '%s': failed to decrypt %s (wrong secret?): %w", name, key, err)
		}
		return string(plain), nil
	}

	sess := &Session{Name: name}
	targets := map[string]*string{
		"AccessKeyID":     &sess.AccessKeyID,
		"SecretAccessKey": &sess.SecretAccessKey,
		"SessionToken":    &sess.SessionToken,
		"Region":          &sess.Region,
		"RoleARN":         &sess.RoleARN,
		"SourceProfile":   &sess.SourceProfile,
	}
	for key, dst := range targets {
		v, err := field(key)
		if err != nil {
			return nil, err
		}
		*dst = v
	}

	exp, err := field("Expiration")
	if err != nil {
		return nil, err
	}
	if exp != "" {
		t, err := time.Parse(time.RFC3339, exp)
		if err != nil {
			return nil, fmt.Errorf("session '%s': invalid expiration: %w", name, err)
		}
		sess.Expiration = t
	}
	return sess, nil
}

func (s *Store) read() (*storeFile, error) {
	data := &storeFile{Sessions: map[string]map[string]string{}}

	b, err := os.ReadFile(s.Path)
	if errors.Is(err, os.ErrNotExist) {
		return data, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read store: %w", err)
	}

	if err := json.Unmarshal(b, data); err != nil {
		return nil, fmt.Errorf("failed to parse store: %w", err)
	}
	if data.Sessions == nil {
		data.Sessions = map[string]map[string]string{}
	}
	return data, nil
}

func (s *Store) write(data *storeFile) error {
	if err := os.MkdirAll(filepath.Dir(s.Path), 0700); err != nil {
		return fmt.Errorf("failed to create store directory: %w", err)
	}
	b, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.Path, b, 0600)
}
