package catalog

import "sync"

// Screen names one of the two admin screens.
type Screen int

const (
	ScreenProducts Screen = iota
	ScreenInventory
)

// Session is one visitor's pair of screens. Its fields are never reassigned;
// reopening a screen swaps in a new Session.
type Session struct {
	List      *ListController
	Inventory *InventoryEditor

	lastSeen uint64
}

// Sessions hands each visitor id its own Session, created on first use.
// When more than max sessions exist the least recently seen one is dropped.
type Sessions struct {
	mu    sync.Mutex
	max   int
	items map[string]*Session
	newFn func() *Session
	clock uint64
}

func NewSessions(limit int, factory func() *Session) *Sessions {
	if limit <= 0 {
		limit = 1000
	}
	return &Sessions{max: limit, items: map[string]*Session{}, newFn: factory}
}

func (s *Sessions) Get(id string) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.items[id]
	if !ok {
		if len(s.items) >= s.max {
			s.evictOldest()
		}
		sess = s.newFn()
		s.items[id] = sess
	}
	s.clock++
	sess.lastSeen = s.clock
	return sess
}

// Reopen gives the named screen of id's session fresh, unmounted state, as
// when an operator switches to that tab. The other screen is kept.
func (s *Sessions) Reopen(id string, screen Screen) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	fresh := s.newFn()
	if old, ok := s.items[id]; ok {
		switch screen {
		case ScreenProducts:
			fresh.Inventory = old.Inventory
		case ScreenInventory:
			fresh.List = old.List
		}
	} else if len(s.items) >= s.max {
		s.evictOldest()
	}
	s.clock++
	fresh.lastSeen = s.clock
	s.items[id] = fresh
	return fresh
}

func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

func (s *Sessions) evictOldest() {
	var oldestID string
	var oldest uint64
	for id, sess := range s.items {
		if oldestID == "" || sess.lastSeen < oldest {
			oldestID, oldest = id, sess.lastSeen
		}
	}
	delete(s.items, oldestID)
}
