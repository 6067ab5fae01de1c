package render

// Block is one line-level unit of rendered text. The set of block types is
// closed; consumers switch over the concrete types below.
type Block interface {
	isBlock()
}

type Paragraph struct {
	Runs []Run
}

type Heading struct {
	Level int
	Runs  []Run
}

// ListItem is a bullet or numbered entry. Number is only meaningful when
// Ordered is set; Marker keeps the bullet glyph the model used.
type ListItem struct {
	Ordered bool
	Number  int
	Marker  string
	Runs    []Run
}

type CalloutKind int

const (
	CalloutTip CalloutKind = iota
)

type Callout struct {
	Kind CalloutKind
	Runs []Run
}

// CodeLine is a line of code or ASCII diagram, kept as literal text.
type CodeLine struct {
	Text string
}

type Blank struct{}

func (Paragraph) isBlock() {}
func (Heading) isBlock()   {}
func (ListItem) isBlock()  {}
func (Callout) isBlock()   {}
func (CodeLine) isBlock()  {}
func (Blank) isBlock()     {}

// Run is an inline-formatted fragment of a block.
type Run interface {
	isRun()
}

type Plain struct {
	Text string
}

type Code struct {
	Text string
}

type Bold struct {
	Text string
}

type Link struct {
	Label string
	URL   string
}

func (Plain) isRun() {}
func (Code) isRun()  {}
func (Bold) isRun()  {}
func (Link) isRun()  {}
