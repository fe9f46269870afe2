package filter

import (
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// AST types for the rule expression grammar

// rulesExpr is the root of the grammar: semicolon-separated rules
type rulesExpr struct {
	Rules []*ruleExpr `parser:"@@ ( ';' @@ )* ';'?"`
}

// ruleExpr represents a single rule: action type [key] match
type ruleExpr struct {
	Action string  `parser:"@( 'show' | 'hide' )"`
	Type   string  `parser:"@( 'texture' | 'entityclass' | 'object' | 'entitykeyvalue' | 'spawnarg' )"`
	First  string  `parser:"@( String | Word )"`
	Second *string `parser:"@( String | Word )?"`
}

// Build the lexer
// Words are anything up to whitespace, a quote or ';' so bare patterns like
// light_.* need no quoting.
var ruleLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Whitespace", Pattern: `\s+`},
	{Name: "Semi", Pattern: `;`},
	{Name: "String", Pattern: `"(?:\\.|[^"\\])*"|'[^']*'`},
	{Name: "Word", Pattern: `[^\s;"']+`},
})

// Build the parser
var ruleParser = participle.MustBuild[rulesExpr](
	participle.Lexer(ruleLexer),
	participle.CaseInsensitive("Word"),
	participle.Elide("Whitespace"),
)

// ParseRules parses a rule expression such as
//
//	hide entityclass light; show entityclass light_ambient
//	hide texture "textures/common/trig(.*)"
//	hide entitykeyvalue hidden 1
//	hide object brush
//
// Inside double quotes only \" and \\ are escapes, so regex escapes such as
// \w pass through untouched; single-quoted patterns are taken verbatim.
func ParseRules(expr string) (Rules, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return nil, fmt.Errorf("empty rule expression")
	}

	ast, err := ruleParser.ParseString("", expr)
	if err != nil {
		return nil, fmt.Errorf("invalid rule expression %q: %w", expr, err)
	}

	rules := make(Rules, 0, len(ast.Rules))
	for _, r := range ast.Rules {
		rule, err := convertRule(r)
		if err != nil {
			return nil, err
		}
		rules = append(rules, rule)
	}
	return rules, nil
}

// convertRule converts an AST rule into a validated Rule
func convertRule(r *ruleExpr) (Rule, error) {
	show, err := ParseAction(strings.ToLower(r.Action))
	if err != nil {
		return Rule{}, err
	}
	kind, err := ParseKind(r.Type)
	if err != nil {
		return Rule{}, err
	}

	if kind == KindSpawnarg {
		if r.Second == nil {
			return Rule{}, fmt.Errorf("%w: %s rule needs a key and a match", ErrInvalidRule, TypeSpawnarg)
		}
		return RuleFor(kind, unquote(*r.Second), unquote(r.First), show)
	}

	if r.Second != nil {
		return Rule{}, fmt.Errorf("%w: unexpected %q after %s match", ErrInvalidRule, *r.Second, kind)
	}
	return RuleFor(kind, unquote(r.First), "", show)
}

func unquote(s string) string {
	if len(s) >= 2 {
		switch {
		case s[0] == '\'' && s[len(s)-1] == '\'':
			return s[1 : len(s)-1]
		case s[0] == '"' && s[len(s)-1] == '"':
			return unescape(s[1 : len(s)-1])
		}
	}
	return s
}

func unescape(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '\\' && i+1 < len(s) && (s[i+1] == '"' || s[i+1] == '\\') {
			i++
			c = s[i]
		}
		b.WriteByte(c)
	}
	return b.String()
}

var quoter = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

func quote(s string) string {
	return `"` + quoter.Replace(s) + `"`
}

// String renders the rule in the expression syntax accepted by ParseRules.
func (r Rule) String() string {
	if r.kind == KindSpawnarg {
		return fmt.Sprintf("%s %s %s %s", r.Action(), r.kind, quote(r.entityKey), quote(r.match))
	}
	return fmt.Sprintf("%s %s %s", r.Action(), r.kind, quote(r.match))
}

// String renders the list as a single expression.
func (rs Rules) String() string {
	parts := make([]string, len(rs))
	for i, r := range rs {
		parts[i] = r.String()
	}
	return strings.Join(parts, "; ")
}
