package enforcer

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"sync"
	"testing"
)

// fakeFastly is a stateful in-memory stand-in for the Fastly API: services,
// numbered versions with draft/active/locked state, name-keyed resources per
// version, clone and activate semantics. It records every mutating resource
// call in ops so tests can assert ordering, and failOn lets a test inject a
// failure for a single operation.
type fakeFastly struct {
	t  *testing.T
	mu sync.Mutex

	services map[string]*fakeService
	nextID   int

	ops    []string
	failOn func(op, kindPath, name string) error

	srv *httptest.Server
}

type fakeService struct {
	id       string
	name     string
	versions []*fakeVersion
}

type fakeVersion struct {
	number    int
	active    bool
	locked    bool
	resources map[string]map[string]json.RawMessage
	settings  json.RawMessage
}

func newFakeFastly(t *testing.T) *fakeFastly {
	f := &fakeFastly{
		t:        t,
		services: make(map[string]*fakeService),
	}
	f.srv = httptest.NewServer(http.HandlerFunc(f.handle))
	t.Cleanup(f.srv.Close)
	return f
}

func (f *fakeFastly) URL() string { return f.srv.URL }

func (f *fakeFastly) serviceByName(name string) *fakeService {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, s := range f.services {
		if s.name == name {
			return s
		}
	}
	return nil
}

func (f *fakeFastly) versionCount(name string) int {
	s := f.serviceByName(name)
	if s == nil {
		return 0
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(s.versions)
}

func (f *fakeFastly) versionState(name string, number int) (active, locked bool) {
	s := f.serviceByName(name)
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, v := range s.versions {
		if v.number == number {
			return v.active, v.locked
		}
	}
	f.t.Fatalf("no version %d for service %q", number, name)
	return false, false
}

func (f *fakeFastly) entity(name string, version int, kindPath, entityName string) map[string]any {
	s := f.serviceByName(name)
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, v := range s.versions {
		if v.number != version {
			continue
		}
		raw, ok := v.resources[kindPath][entityName]
		if !ok {
			return nil
		}
		var out map[string]any
		if err := json.Unmarshal(raw, &out); err != nil {
			f.t.Fatalf("stored entity %s/%s is not valid JSON: %v", kindPath, entityName, err)
		}
		return out
	}
	return nil
}

func (f *fakeFastly) opCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.ops)
}

func (f *fakeFastly) opIndex(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, o := range f.ops {
		if o == op {
			return i
		}
	}
	return -1
}

func (f *fakeFastly) handle(w http.ResponseWriter, r *http.Request) {
	parts := splitPath(r.URL.Path)

	switch {
	case len(parts) == 1 && parts[0] == "current_customer":
		writeJSON(w, http.StatusOK, map[string]string{"id": "customer"})
	case len(parts) == 2 && parts[0] == "service" && parts[1] == "search":
		f.handleSearch(w, r)
	case len(parts) == 1 && parts[0] == "service" && r.Method == http.MethodPost:
		f.handleCreateService(w, r)
	case len(parts) == 2 && parts[0] == "service" && r.Method == http.MethodDelete:
		f.handleDeleteService(w, parts[1])
	case len(parts) == 3 && parts[0] == "service" && parts[2] == "details":
		f.handleDetails(w, parts[1])
	case len(parts) == 3 && parts[0] == "service" && parts[2] == "version" && r.Method == http.MethodPost:
		f.handleCreateVersion(w, parts[1])
	case len(parts) >= 5 && parts[0] == "service" && parts[2] == "version":
		f.handleVersionScoped(w, r, parts)
	default:
		writeError(w, http.StatusNotFound, "record not found")
	}
}

func (f *fakeFastly) handleSearch(w http.ResponseWriter, r *http.Request) {
	s := f.serviceByName(r.URL.Query().Get("name"))
	if s == nil {
		writeError(w, http.StatusNotFound, "record not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"id": s.id, "name": s.name})
}

func (f *fakeFastly) handleCreateService(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Name == "" {
		writeError(w, http.StatusBadRequest, "service name is required")
		return
	}
	f.mu.Lock()
	f.nextID++
	s := &fakeService{id: fmt.Sprintf("svc-%04d", f.nextID), name: body.Name}
	f.services[s.id] = s
	f.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]string{"id": s.id, "name": s.name})
}

func (f *fakeFastly) handleDeleteService(w http.ResponseWriter, id string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.services[id]; !ok {
		writeError(w, http.StatusNotFound, "record not found")
		return
	}
	delete(f.services, id)
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (f *fakeFastly) handleDetails(w http.ResponseWriter, id string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.services[id]
	if !ok {
		writeError(w, http.StatusNotFound, "record not found")
		return
	}
	details := map[string]any{"id": s.id, "name": s.name}
	for _, v := range s.versions {
		if v.active {
			details["active_version"] = versionJSON(v)
		}
	}
	if len(s.versions) > 0 {
		details["version"] = versionJSON(s.versions[len(s.versions)-1])
	}
	writeJSON(w, http.StatusOK, details)
}

func (f *fakeFastly) handleCreateVersion(w http.ResponseWriter, id string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.services[id]
	if !ok {
		writeError(w, http.StatusNotFound, "record not found")
		return
	}
	if err := f.fail("create", "version", ""); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	v := &fakeVersion{
		number:    len(s.versions) + 1,
		resources: make(map[string]map[string]json.RawMessage),
	}
	s.versions = append(s.versions, v)
	writeJSON(w, http.StatusOK, versionJSON(v))
}

func (f *fakeFastly) handleVersionScoped(w http.ResponseWriter, r *http.Request, parts []string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	s, ok := f.services[parts[1]]
	if !ok {
		writeError(w, http.StatusNotFound, "record not found")
		return
	}
	number, err := strconv.Atoi(parts[3])
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad version number")
		return
	}
	var v *fakeVersion
	for _, cand := range s.versions {
		if cand.number == number {
			v = cand
		}
	}
	if v == nil {
		writeError(w, http.StatusNotFound, "record not found")
		return
	}

	rest := parts[4:]
	switch rest[0] {
	case "clone":
		if err := f.fail("clone", "version", ""); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		clone := &fakeVersion{
			number:    s.versions[len(s.versions)-1].number + 1,
			resources: make(map[string]map[string]json.RawMessage),
			settings:  v.settings,
		}
		for kind, entities := range v.resources {
			clone.resources[kind] = make(map[string]json.RawMessage, len(entities))
			for name, raw := range entities {
				clone.resources[kind][name] = raw
			}
		}
		s.versions = append(s.versions, clone)
		writeJSON(w, http.StatusOK, versionJSON(clone))
	case "activate":
		if err := f.fail("activate", "version", ""); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		for _, other := range s.versions {
			other.active = false
		}
		v.active = true
		v.locked = true
		writeJSON(w, http.StatusOK, versionJSON(v))
	case "deactivate":
		v.active = false
		writeJSON(w, http.StatusOK, versionJSON(v))
	case "settings":
		f.handleSettings(w, r, v)
	default:
		f.handleResource(w, r, v, rest)
	}
}

func (f *fakeFastly) handleSettings(w http.ResponseWriter, r *http.Request, v *fakeVersion) {
	switch r.Method {
	case http.MethodGet:
		if v.settings == nil {
			writeJSON(w, http.StatusOK, map[string]any{})
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(v.settings)
	case http.MethodPut:
		if v.active || v.locked {
			writeError(w, http.StatusConflict, "version is locked")
			return
		}
		raw, err := readBody(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		if err := f.fail("update", "settings", ""); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		v.settings = raw
		f.ops = append(f.ops, "update settings")
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (f *fakeFastly) handleResource(w http.ResponseWriter, r *http.Request, v *fakeVersion, rest []string) {
	kindPath := rest[0]
	rest = rest[1:]
	if kindPath == "logging" {
		kindPath += "/" + rest[0]
		rest = rest[1:]
	}
	var entityName string
	if len(rest) > 0 {
		entityName, _ = url.PathUnescape(rest[0])
	}

	entities := v.resources[kindPath]
	if entities == nil {
		entities = make(map[string]json.RawMessage)
		v.resources[kindPath] = entities
	}

	if r.Method != http.MethodGet && (v.active || v.locked) {
		writeError(w, http.StatusConflict, "version is locked")
		return
	}

	switch {
	case r.Method == http.MethodGet && entityName == "":
		names := make([]string, 0, len(entities))
		for name := range entities {
			names = append(names, name)
		}
		sort.Strings(names)
		list := make([]json.RawMessage, 0, len(names))
		for _, name := range names {
			list = append(list, entities[name])
		}
		writeJSON(w, http.StatusOK, list)

	case r.Method == http.MethodPost && entityName == "":
		raw, err := readBody(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		name := entityJSONName(raw)
		if name == "" {
			writeError(w, http.StatusBadRequest, "entity name is required")
			return
		}
		if _, exists := entities[name]; exists {
			writeError(w, http.StatusConflict, "duplicate record")
			return
		}
		if err := f.fail("create", kindPath, name); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		entities[name] = raw
		f.ops = append(f.ops, fmt.Sprintf("create %s %s", kindPath, name))
		writeJSON(w, http.StatusOK, json.RawMessage(raw))

	case r.Method == http.MethodPut && entityName != "":
		if _, exists := entities[entityName]; !exists {
			writeError(w, http.StatusNotFound, "record not found")
			return
		}
		raw, err := readBody(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		if err := f.fail("update", kindPath, entityName); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		delete(entities, entityName)
		entities[entityJSONName(raw)] = raw
		f.ops = append(f.ops, fmt.Sprintf("update %s %s", kindPath, entityName))
		writeJSON(w, http.StatusOK, json.RawMessage(raw))

	case r.Method == http.MethodDelete && entityName != "":
		if _, exists := entities[entityName]; !exists {
			writeError(w, http.StatusNotFound, "record not found")
			return
		}
		if err := f.fail("delete", kindPath, entityName); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		delete(entities, entityName)
		f.ops = append(f.ops, fmt.Sprintf("delete %s %s", kindPath, entityName))
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})

	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (f *fakeFastly) fail(op, kindPath, name string) error {
	if f.failOn == nil {
		return nil
	}
	return f.failOn(op, kindPath, name)
}

func splitPath(p string) []string {
	return strings.Split(strings.Trim(p, "/"), "/")
}

func versionJSON(v *fakeVersion) map[string]any {
	return map[string]any{"number": v.number, "active": v.active, "locked": v.locked}
}

func entityJSONName(raw json.RawMessage) string {
	var body struct {
		Name string `json:"name"`
	}
	_ = json.Unmarshal(raw, &body)
	return body.Name
}

func readBody(r *http.Request) (json.RawMessage, error) {
	var raw json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("invalid JSON body: %w", err)
	}
	return raw, nil
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"msg": msg})
}
