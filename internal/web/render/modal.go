package render

import (
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
)

// ModalKind is which dialog, if any, a page shows.
type ModalKind string

const (
	ModalClosed           ModalKind = ""
	ModalCreating         ModalKind = "create"
	ModalEditing          ModalKind = "edit"
	ModalConfirmingDelete ModalKind = "delete"
)

// Modal is the single piece of dialog state a page carries. Editing and
// ConfirmingDelete always name the record they act on.
type Modal struct {
	Kind ModalKind
	ID   string
}

func Creating() Modal { return Modal{Kind: ModalCreating} }
func Editing(id string) Modal { return Modal{Kind: ModalEditing, ID: id} }
func Deleting(id string) Modal { return Modal{Kind: ModalConfirmingDelete, ID: id} }

// ParseModal reads the modal and id query parameters. Anything malformed
// leaves the dialog closed.
func ParseModal(c *gin.Context) Modal {
	kind := ModalKind(strings.TrimSpace(c.Query("modal")))
	id := strings.TrimSpace(c.Query("id"))
	switch kind {
	case ModalCreating:
		return Creating()
	case ModalEditing, ModalConfirmingDelete:
		if id == "" {
			return Modal{}
		}
		return Modal{Kind: kind, ID: id}
	default:
		return Modal{}
	}
}

func (m Modal) Open() bool { return m.Kind != ModalClosed }
func (m Modal) IsCreating() bool { return m.Kind == ModalCreating }
func (m Modal) IsEditing() bool { return m.Kind == ModalEditing }
func (m Modal) IsDeleting() bool { return m.Kind == ModalConfirmingDelete }

// Query encodes m for a link that opens it, keeping the other parameters in
// base.
func (m Modal) Query(base url.Values) string {
	q := url.Values{}
	for k, v := range base {
		if k != "modal" && k != "id" {
			q[k] = v
		}
	}
	if m.Kind != ModalClosed {
		q.Set("modal", string(m.Kind))
	}
	if m.ID != "" {
		q.Set("id", m.ID)
	}
	if len(q) == 0 {
		return ""
	}
	return "?" + q.Encode()
}
