package admonish

import "strings"

// Kind identifies an admonition directive. Alias kinds (e.g. "caution")
// share the css class of their canonical kind but keep their own default
// title.
type Kind string

const (
	KindNote      Kind = "note"
	KindAbstract  Kind = "abstract"
	KindSummary   Kind = "summary"
	KindTldr      Kind = "tldr"
	KindInfo      Kind = "info"
	KindTodo      Kind = "todo"
	KindTip       Kind = "tip"
	KindHint      Kind = "hint"
	KindImportant Kind = "important"
	KindSuccess   Kind = "success"
	KindCheck     Kind = "check"
	KindDone      Kind = "done"
	KindQuestion  Kind = "question"
	KindHelp      Kind = "help"
	KindFaq       Kind = "faq"
	KindWarning   Kind = "warning"
	KindCaution   Kind = "caution"
	KindAttention Kind = "attention"
	KindFailure   Kind = "failure"
	KindFail      Kind = "fail"
	KindMissing   Kind = "missing"
	KindDanger    Kind = "danger"
	KindError     Kind = "error"
	KindBug       Kind = "bug"
	KindExample   Kind = "example"
	KindQuote     Kind = "quote"
	KindCite      Kind = "cite"
)

// ParseKind maps a directive token to its Kind. Unknown tokens are not an
// error: they report false and the caller falls back to KindNote.
func ParseKind(token string) (Kind, bool) {
	switch kind := Kind(token); kind {
	case KindNote,
		KindAbstract, KindSummary, KindTldr,
		KindInfo, KindTodo,
		KindTip, KindHint, KindImportant,
		KindSuccess, KindCheck, KindDone,
		KindQuestion, KindHelp, KindFaq,
		KindWarning, KindCaution, KindAttention,
		KindFailure, KindFail, KindMissing,
		KindDanger, KindError,
		KindBug,
		KindExample,
		KindQuote, KindCite:
		return kind, true
	default:
		return KindNote, false
	}
}

// Class returns the css class shared by the kind and its aliases.
func (k Kind) Class() string {
	switch k {
	case KindAbstract, KindSummary, KindTldr:
		return string(KindAbstract)
	case KindInfo, KindTodo:
		return string(KindInfo)
	case KindTip, KindHint, KindImportant:
		return string(KindTip)
	case KindSuccess, KindCheck, KindDone:
		return string(KindSuccess)
	case KindQuestion, KindHelp, KindFaq:
		return string(KindQuestion)
	case KindWarning, KindCaution, KindAttention:
		return string(KindWarning)
	case KindFailure, KindFail, KindMissing:
		return string(KindFailure)
	case KindDanger, KindError:
		return string(KindDanger)
	case KindBug:
		return string(KindBug)
	case KindExample:
		return string(KindExample)
	case KindQuote, KindCite:
		return string(KindQuote)
	default:
		return string(KindNote)
	}
}

// DefaultTitle returns the title displayed when a block provides none.
func (k Kind) DefaultTitle() string {
	token := string(k)
	if token == "" {
		token = string(KindNote)
	}

	return strings.ToUpper(token[:1]) + token[1:]
}
