package game

import (
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/devden/internal/storage"
)

// JournalOptions names who played and where.
type JournalOptions struct {
	Player   string
	Frontend string // "terminal", "ssh" or "window"
	Logger   *log.Logger
	// Now measures the session's wall-clock duration. Nil uses time.Now.
	Now func() time.Time
}

// Journal writes one session's statistics to the store. Save is idempotent
// and safe to call from more than one goroutine.
type Journal struct {
	store   *storage.Store
	game    *Game
	opts    JournalOptions
	started time.Time

	once sync.Once
	id   int64
}

// NewJournal starts timing a session. A nil store journals nothing.
func NewJournal(g *Game, store *storage.Store, opts JournalOptions) *Journal {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Journal{store: store, game: g, opts: opts, started: opts.Now()}
}

// Save writes the session once. Failed sessions and sessions that never
// ran a frame are not journaled.
func (j *Journal) Save() {
	if j == nil || j.store == nil {
		return
	}
	j.once.Do(func() {
		st := j.game.Status()
		if st.Failed || st.Ticks == 0 {
			return
		}
		rec := storage.SessionRecord{
			Player:        j.opts.Player,
			Frontend:      j.opts.Frontend,
			MapRef:        j.game.Config().MapSource().Ref,
			Ticks:         st.Ticks,
			Distance:      st.Distance,
			Conversations: st.Conversations,
			Duration:      int(j.opts.Now().Sub(j.started).Seconds()),
		}
		id, err := j.store.SaveSession(rec)
		if err != nil {
			if j.opts.Logger != nil {
				j.opts.Logger.Warn("could not journal session", "player", j.opts.Player, "error", err)
			}
			return
		}
		j.id = id
		if j.opts.Logger != nil {
			j.opts.Logger.Debug("session journaled", "id", id, "player", j.opts.Player, "ticks", st.Ticks)
		}
	})
}

// ID returns the journal row id, or 0 before a successful Save.
func (j *Journal) ID() int64 {
	if j == nil {
		return 0
	}
	return j.id
}
