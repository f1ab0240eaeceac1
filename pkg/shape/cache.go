package shape

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strconv"
)

// Cache is the content-addressed store for one generation run. It maps
// structural hashes to declarations and owns the id counter, so independent
// runs never share state and tests can construct isolated instances.
//
// The cache only grows; it is bounded by the number of distinct shapes in a
// run, not by input size. It is not safe for concurrent use: callers that
// fan out across inputs must serialize every Normalize call (see
// internal/walker).
type Cache struct {
	decls  map[string]*Decl
	order  []*Decl
	nextID int
}

// NewCache creates an empty cache with the id counter at 0. Call once per
// independent generation run.
func NewCache() *Cache {
	return &Cache{decls: make(map[string]*Decl)}
}

// Len returns the number of registered declarations.
func (c *Cache) Len() int { return len(c.order) }

// Decls returns all registered declarations in first-seen (id) order.
func (c *Cache) Decls() []*Decl {
	out := make([]*Decl, len(c.order))
	copy(out, c.order)
	return out
}

// Lookup returns the declaration stored under a structural hash, if any.
func (c *Cache) Lookup(hash string) (*Decl, bool) {
	d, ok := c.decls[hash]
	return d, ok
}

// Warnings returns one entry per unresolved (empty-array) declaration, in id
// order, carrying the declaration's first origin context.
func (c *Cache) Warnings() []Warning {
	var out []Warning
	for _, d := range c.order {
		if !d.Type.IsUnresolved() {
			continue
		}
		w := Warning{DeclID: d.ID}
		if len(d.Contexts) > 0 {
			w.Context = d.Contexts[0]
		}
		out = append(out, w)
	}
	return out
}

// insert stores a declaration under a hash. The hash must be new; callers go
// through register, which checks the reuse path first.
func (c *Cache) insert(hash string, d *Decl) error {
	if _, exists := c.decls[hash]; exists {
		return &DuplicateRegistrationError{Hash: hash}
	}
	c.decls[hash] = d
	c.order = append(c.order, d)
	return nil
}

// register resolves a structural type to an alias. The reuse path appends
// origin to the existing declaration's contexts and consumes no id. The
// forceUnique path skips the lookup entirely and stores under a key perturbed
// with the freshly allocated id, so no later registration can ever collide
// with it. forceUnique is only set for the empty-array marker.
func (c *Cache) register(st StructuralType, origin string, forceUnique bool) (string, error) {
	hash, err := hashStructuralType(st)
	if err != nil {
		return "", err
	}

	if !forceUnique {
		if d, ok := c.decls[hash]; ok {
			d.Contexts = append(d.Contexts, origin)
			return d.Alias(), nil
		}
	}

	id := c.nextID
	c.nextID++

	d := &Decl{
		ID:       id,
		Contexts: []string{origin},
		Type:     st,
	}

	key := hash
	if forceUnique {
		key = hash + "#" + strconv.Itoa(id)
	}
	if err := c.insert(key, d); err != nil {
		return "", err
	}
	return d.Alias(), nil
}

// hashStructuralType digests the canonical serialization of a structural
// type. Equal shapes yield equal hashes; ordering of hashes is irrelevant,
// equality is the only operation required.
func hashStructuralType(st StructuralType) (string, error) {
	canonical, err := json.Marshal(st)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(canonical)
	return hex.EncodeToString(sum[:]), nil
}
