package auth

import (
	"encoding/gob"
	"net/http"

	"go.uber.org/zap"
)

// Flash kinds rendered by the layout.
const (
	FlashSuccess = "success"
	FlashError   = "error"
)

// Flash is a one-shot message shown on the next page view.
type Flash struct {
	Kind    string
	Message string
}

func init() {
	gob.Register(Flash{})
}

// AddFlash queues a message for the next request. Failures are logged and
// otherwise ignored; a lost flash never blocks the action that produced it.
func (sm *SessionManager) AddFlash(w http.ResponseWriter, r *http.Request, kind, msg string) {
	sess, _ := sm.store.Get(r, sm.name)
	sess.AddFlash(Flash{Kind: kind, Message: msg})
	if err := sess.Save(r, w); err != nil {
		sm.log.Warn("save flash failed", zap.Error(err))
	}
}

// Flashes pops all pending messages.
func (sm *SessionManager) Flashes(w http.ResponseWriter, r *http.Request) []Flash {
	sess, err := sm.store.Get(r, sm.name)
	if err != nil {
		return nil
	}
	raw := sess.Flashes()
	if len(raw) == 0 {
		return nil
	}
	out := make([]Flash, 0, len(raw))
	for _, v := range raw {
		if f, ok := v.(Flash); ok {
			out = append(out, f)
		}
	}
	if err := sess.Save(r, w); err != nil {
		sm.log.Warn("clear flashes failed", zap.Error(err))
	}
	return out
}
