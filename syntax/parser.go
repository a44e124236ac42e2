package syntax

type parser struct {
	l      *lexer
	cur    Token
	errors ErrorList
}

// Parse reads a whole input as a sequence of expressions and returns the
// root node. All parse errors are collected and returned as an ErrorList.
func Parse(source string) (*Node, error) {
	p := &parser{l: newLexer(source)}
	p.next()

	root := &Node{Tag: TagRoot, Pos: Position{Line: 1, Column: 1}}
	root.Children = append(root.Children, &Node{Tag: TagAnchor, Pos: root.Pos})
	for p.cur.Type != tokenEOF {
		switch p.cur.Type {
		case tokenRParen, tokenRBrace:
			p.errorUnexpected(p.cur)
			p.next()
			continue
		}
		if expr := p.parseExpr(); expr != nil {
			root.Children = append(root.Children, expr)
		}
	}
	root.Children = append(root.Children, &Node{Tag: TagAnchor, Pos: p.cur.Pos})

	if len(p.errors) > 0 {
		return nil, p.errors
	}
	return root, nil
}

func (p *parser) next() {
	p.cur = p.l.NextToken()
}

func (p *parser) parseExpr() *Node {
	tok := p.cur
	switch {
	case tok.Type == tokenNumber:
		p.next()
		return &Node{Tag: TagNumber, Contents: tok.Literal, Pos: tok.Pos}
	case tok.Type == tokenKeyword:
		p.next()
		return &Node{Tag: TagKeyword, Contents: tok.Literal, Pos: tok.Pos}
	case isOperator(tok.Type):
		p.next()
		return &Node{Tag: TagOperator, Contents: tok.Literal, Pos: tok.Pos}
	case tok.Type == tokenLParen:
		return p.parseList(TagSExpr, tokenRParen)
	case tok.Type == tokenLBrace:
		return p.parseList(TagQExpr, tokenRBrace)
	default:
		p.errorUnexpected(tok)
		p.next()
		return nil
	}
}

func (p *parser) parseList(tag string, closer TokenType) *Node {
	open := p.cur
	node := &Node{Tag: tag, Pos: open.Pos}
	node.Children = append(node.Children, delimiter(open))
	p.next()

	for {
		switch p.cur.Type {
		case closer:
			node.Children = append(node.Children, delimiter(p.cur))
			p.next()
			return node
		case tokenEOF:
			p.errorExpected(p.cur, "'"+string(closer)+"'")
			return node
		case tokenRParen, tokenRBrace:
			// a mismatched closer still ends the list so one typo yields one error
			p.errorExpected(p.cur, "'"+string(closer)+"'")
			p.next()
			return node
		}
		if expr := p.parseExpr(); expr != nil {
			node.Children = append(node.Children, expr)
		}
	}
}

func delimiter(tok Token) *Node {
	return &Node{Tag: TagDelimiter, Contents: tok.Literal, Pos: tok.Pos}
}
