package parser

// Outcome is the three-way verdict of a grammar rule.
type Outcome int

const (
	// NotPresent means the rule does not apply at the current position.
	// No tokens were consumed and the next alternative may be tried.
	NotPresent Outcome = iota
	// Matched means the rule produced a node.
	Matched
	// Failed means the rule recognised its start but the input is
	// malformed. Parsing must stop.
	Failed
)

func (o Outcome) String() string {
	switch o {
	case NotPresent:
		return "NotPresent"
	case Matched:
		return "Matched"
	case Failed:
		return "Failed"
	}
	return "Outcome(?)"
}

// Result is what every grammar rule returns.
type Result struct {
	Outcome Outcome
	Node    *Node  // set when Matched
	Err     *Error // set when Failed
}

func matched(n *Node) Result { return Result{Outcome: Matched, Node: n} }
func failed(e *Error) Result { return Result{Outcome: Failed, Err: e} }
func notPresent() Result     { return Result{Outcome: NotPresent} }

func (r Result) IsMatched() bool { return r.Outcome == Matched }
func (r Result) IsFailed() bool  { return r.Outcome == Failed }

type rule func() Result

// firstOf tries alts in order and returns the first result that is not
// NotPresent. The token position is rewound before each further try.
func (p *Parser) firstOf(alts ...rule) Result {
	start, line := p.pos, p.line
	for _, alt := range alts {
		r := alt()
		if r.Outcome != NotPresent {
			return r
		}
		p.pos, p.line = start, line
	}
	return notPresent()
}
