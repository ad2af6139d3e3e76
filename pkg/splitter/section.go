package splitter

// Section types. Any other type is a repeat keyword such as "sum".
const (
	TypeDefault  = "default"
	TypeOptional = "optional"

	DefaultName = "main"
)

// CodePart is one token of raw text in a right-linked chain.
type CodePart struct {
	Expression string
	Next       *CodePart
	HasBracket bool
}

// PlainText returns the text of p and every following part, wrapped in
// parentheses when p came from a bracketed container.
func (p *CodePart) PlainText() string {
	text := p.Expression
	if p.Next != nil {
		text += p.Next.PlainText()
	}
	if p.HasBracket {
		return "(" + text + ")"
	}
	return text
}

// CodeSection is a classified fragment of source. Next links the following
// section.
type CodeSection struct {
	Name       string
	Type       string
	Expression *CodePart
	Next       *CodeSection
}

// NewCodeSection returns a default section named "main".
func NewCodeSection(parts *CodePart) *CodeSection {
	return &CodeSection{Name: DefaultName, Type: TypeDefault, Expression: parts}
}

// IsRepeat reports whether the section is a repeat-keyword block.
func (s *CodeSection) IsRepeat() bool {
	return s.Type != TypeDefault && s.Type != TypeOptional
}

// PlainText returns the section's source. Repeat blocks keep their
// &type{...} wrapper, other sections return the bare part text.
func (s *CodeSection) PlainText() string {
	text := ""
	if s.Expression != nil {
		text = s.Expression.PlainText()
	}
	if s.IsRepeat() {
		return "&" + s.Type + "{" + text + "}"
	}
	return text
}

// Part is one record of a flattened section chain.
type Part struct {
	Name       string `yaml:"name" json:"name"`
	Type       string `yaml:"type" json:"type"`
	Expression string `yaml:"expression" json:"expression"`
}

// UpdateList flattens s and the sections after it into list. A section is
// merged into the previous record when both are default sections, and a
// repeat block is always merged into the previous record whatever its type.
// Everything else starts a new record.
func (s *CodeSection) UpdateList(list []Part) []Part {
	text := s.PlainText()
	n := len(list)
	if n > 0 && ((s.Type == TypeDefault && list[n-1].Type == TypeDefault) || s.IsRepeat()) {
		list[n-1].Expression += text
	} else {
		list = append(list, Part{Name: s.Name, Type: s.Type, Expression: text})
	}
	if s.Next != nil {
		return s.Next.UpdateList(list)
	}
	return list
}

// Flatten returns the records of the chain starting at s.
func Flatten(s *CodeSection) []Part {
	if s == nil {
		return nil
	}
	return s.UpdateList(nil)
}
