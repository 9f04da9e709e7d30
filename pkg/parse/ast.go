package parse

import (
	"src.abasic.dev/pkg/diag"
	"src.abasic.dev/pkg/eval/vals"
)

// Node is implemented by all nodes of the syntax tree.
type Node interface {
	diag.Ranger
}

// Expr is an expression node.
type Expr interface {
	Node
	expr()
}

// LValue is an expression that can be assigned to: a *Var or an *Index.
type LValue interface {
	Expr
	// VarName returns the variable name as written, upper-cased.
	VarName() string
}

// Stmt is a statement node.
type Stmt interface {
	Node
	stmt()
}

type exprNode struct{ diag.Ranging }

func (exprNode) expr() {}

type stmtNode struct{ diag.Ranging }

func (stmtNode) stmt() {}

// Expressions.
type (
	// Number is a numeric literal.
	Number struct {
		exprNode
		Value float64
	}
	// String is a string literal.
	String struct {
		exprNode
		Value string
	}
	// Var is a scalar variable reference.
	Var struct {
		exprNode
		Name string
	}
	// Index is an array element reference.
	Index struct {
		exprNode
		Name string
		Subs []Expr
	}
	// Unary is a sign applied to an operand; Op is '+' or '-'.
	Unary struct {
		exprNode
		Op byte
		X  Expr
	}
	// Not is a logical negation.
	Not struct {
		exprNode
		X Expr
	}
	// Binary is a binary operation.
	Binary struct {
		exprNode
		Op   vals.Op
		L, R Expr
	}
	// Call is a call to a built-in function.
	Call struct {
		exprNode
		Func string
		Args []Expr
	}
	// FnCall is a call to a user-defined function.
	FnCall struct {
		exprNode
		Name string
		Arg  Expr
	}
)

func (v *Var) VarName() string   { return v.Name }
func (v *Index) VarName() string { return v.Name }

// PrintKind distinguishes the items of a PRINT statement.
type PrintKind int

// Possible values for PrintKind.
const (
	PrintExpr PrintKind = iota
	PrintComma
	PrintSemi
	PrintTab
	PrintSpc
)

// PrintItem is one item of a PRINT statement. X is nil for separators.
type PrintItem struct {
	Kind PrintKind
	X    Expr
}

// DataItem is one literal of a DATA statement.
type DataItem struct {
	Text   string
	Quoted bool
}

// Point is a coordinate pair.
type Point struct {
	X, Y Expr
}

// NoLine marks an absent line number.
const NoLine = -1

// Statements.
type (
	// Command is a statement consisting only of its keyword, such as END,
	// RETURN, HOME or HGR.
	Command struct {
		stmtNode
		Keyword string
	}
	// Rem is a remark.
	Rem struct {
		stmtNode
		Text string
	}
	// Let is an assignment, with or without the LET keyword.
	Let struct {
		stmtNode
		Target LValue
		Value  Expr
	}
	// Print is a PRINT statement. Newline is false when the last item is a
	// separator.
	Print struct {
		stmtNode
		Items   []PrintItem
		Newline bool
	}
	// If is a conditional. A line number after THEN, GOTO or ELSE is
	// represented as a GOTO statement.
	If struct {
		stmtNode
		Cond Expr
		Then []Stmt
		Else []Stmt
	}
	// Jump is a GOTO or GOSUB statement.
	Jump struct {
		stmtNode
		Keyword string
		Line    int
	}
	// On is an ON ... GOTO or ON ... GOSUB statement.
	On struct {
		stmtNode
		Index Expr
		Gosub bool
		Lines []int
	}
	// OnErr is an ONERR GOTO statement.
	OnErr struct {
		stmtNode
		Line int
	}
	// For opens a counted loop. Step is nil when omitted.
	For struct {
		stmtNode
		Var            string
		From, To, Step Expr
	}
	// Next closes counted loops. Vars is empty for a bare NEXT.
	Next struct {
		stmtNode
		Vars []string
	}
	// While opens a conditional loop closed by WEND.
	While struct {
		stmtNode
		Cond Expr
	}
	// Dim declares arrays.
	Dim struct {
		stmtNode
		Arrays []*Index
	}
	// Data holds literals for READ.
	Data struct {
		stmtNode
		Items []DataItem
	}
	// Read assigns DATA literals to variables.
	Read struct {
		stmtNode
		Targets []LValue
	}
	// Restore resets the DATA pointer, or with a File restores variables
	// saved by STORE.
	Restore struct {
		stmtNode
		Line int
		File Expr
	}
	// Input reads values typed by the user. HasPrompt is set when a string
	// prompt precedes the targets.
	Input struct {
		stmtNode
		Prompt    string
		HasPrompt bool
		Targets   []LValue
	}
	// Get reads a single key.
	Get struct {
		stmtNode
		Target LValue
	}
	// DefFn defines a single-parameter function.
	DefFn struct {
		stmtNode
		Name  string
		Param string
		Body  Expr
	}
	// Run restarts the program, optionally at a line or after loading a file.
	Run struct {
		stmtNode
		Line int
		File Expr
	}
	// List lists the program; From and To are NoLine when absent.
	List struct {
		stmtNode
		From, To int
	}
	// Del deletes a range of lines.
	Del struct {
		stmtNode
		From, To int
	}
	// Unary statements taking a single expression, such as HTAB, VTAB,
	// CALL, PR#, IN#, COLOR=, HCOLOR=, ROT=, SCALE=, SPEED=, HIMEM: and
	// LOMEM:. Keyword does not include the '='.
	ExprStmt struct {
		stmtNode
		Keyword string
		X       Expr
	}
	// Poke writes a memory cell.
	Poke struct {
		stmtNode
		Addr, Value Expr
	}
	// Wait polls a memory cell. Xor is nil when omitted.
	Wait struct {
		stmtNode
		Addr, Mask, Xor Expr
	}
	// Plot plots a low-resolution point.
	Plot struct {
		stmtNode
		X, Y Expr
	}
	// Lin is an HLIN or VLIN statement.
	Lin struct {
		stmtNode
		Keyword string
		A, B    Expr
		At      Expr
	}
	// HPlot plots high-resolution points and lines. FromLast is set when
	// the statement starts with TO.
	HPlot struct {
		stmtNode
		FromLast bool
		Points   []Point
	}
	// Draw is a DRAW or XDRAW statement; At is nil when omitted.
	Draw struct {
		stmtNode
		Keyword string
		Shape   Expr
		At      *Point
	}
	// Shload loads a shape table from a file.
	Shload struct {
		stmtNode
		File Expr
	}
	// StoreArray is a STORE or RECALL statement for a numeric or string
	// array.
	StoreArray struct {
		stmtNode
		Keyword string
		Array   string
	}
	// StoreVars saves all variables under a name.
	StoreVars struct {
		stmtNode
		Name Expr
	}
	// Program is a SAVE or LOAD statement.
	Program struct {
		stmtNode
		Keyword string
		File    Expr
	}
	// FileCmd is a file-system command such as OPEN, READ or CATALOG.
	// Params holds numeric parameters keyed by their letter, such as 'L' for
	// the record length.
	FileCmd struct {
		stmtNode
		Keyword string
		Name    Expr
		Name2   Expr
		Params  map[byte]int
	}
)
