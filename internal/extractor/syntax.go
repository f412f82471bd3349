package extractor

import (
	"context"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"

	"i18n-extract/internal/position"
)

// ScriptLanguage returns the grammar used for a script extension or a <script lang> value.
func ScriptLanguage(lang string) *sitter.Language {
	switch lang {
	case ".ts", "ts":
		return typescript.GetLanguage()
	case ".tsx", "tsx":
		return tsx.GetLanguage()
	default:
		return javascript.GetLanguage()
	}
}

// parse parses src, which starts at byte base of the document indexed by m. A tree that
// contains error or missing nodes is rejected with ErrParse.
func parse(ctx context.Context, lang *sitter.Language, src []byte, base int, m *position.Mapper) (*sitter.Node, error) {
	p := sitter.NewParser()
	p.SetLanguage(lang)
	tree, err := p.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	root := tree.RootNode()
	if !root.HasError() {
		return root, nil
	}
	offset := base
	if bad := firstError(root); bad != nil {
		offset += int(bad.StartByte())
	}
	pos := m.PositionAt(offset)
	return nil, fmt.Errorf("%w: syntax error at line %d column %d", ErrParse, pos.Line+1, pos.Character+1)
}

func firstError(n *sitter.Node) *sitter.Node {
	if n.IsError() || n.IsMissing() {
		return n
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		if bad := firstError(n.Child(i)); bad != nil {
			return bad
		}
	}
	return nil
}

// childOfType returns the first direct child with the given node type.
func childOfType(n *sitter.Node, typ string) *sitter.Node {
	for i := 0; i < int(n.ChildCount()); i++ {
		if c := n.Child(i); c.Type() == typ {
			return c
		}
	}
	return nil
}

// span returns the document offsets of n for a tree parsed at base.
func span(n *sitter.Node, base int) (int, int) {
	return base + int(n.StartByte()), base + int(n.EndByte())
}
