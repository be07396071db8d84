package ast

// Dump converts a node into plain maps and slices that encode cleanly as JSON
// or YAML. Every map carries a "kind" key naming the variant.
func Dump(n Node) any {
	switch node := n.(type) {
	case nil:
		return nil
	case *Program:
		return map[string]any{"kind": "Program", "statements": dumpStmts(node.Statements)}
	case *Block:
		if node == nil {
			return nil
		}
		return map[string]any{"kind": "Block", "statements": dumpStmts(node.Statements)}

	case *Assignment:
		return map[string]any{"kind": "Assignment", "name": node.Name, "value": Dump(node.Value)}
	case *Print:
		return map[string]any{"kind": "Print", "content": Dump(node.Content)}
	case *Return:
		return map[string]any{"kind": "Return", "value": Dump(node.Value)}
	case *If:
		m := map[string]any{
			"kind":        "If",
			"condition":   Dump(node.Condition),
			"consequence": Dump(node.Consequence),
		}
		if node.HasElse() {
			m["alternative"] = Dump(node.Alternative)
		}
		return m
	case *For:
		m := map[string]any{"kind": "For", "iterator": Dump(node.Iterator), "body": Dump(node.Body)}
		if node.Target != "" {
			m["target"] = node.Target
		}
		return m
	case *While:
		return map[string]any{"kind": "While", "condition": Dump(node.Condition), "body": Dump(node.Body)}
	case *FunctionDef:
		params := node.Params
		if params == nil {
			params = []string{}
		}
		return map[string]any{"kind": "FunctionDef", "name": node.Name, "params": params, "body": Dump(node.Body)}
	case *CallStmt:
		return map[string]any{"kind": "FunctionCall", "name": node.Name, "arguments": dumpExprs(node.Arguments)}
	case *ClassDef:
		return map[string]any{"kind": "ClassDef", "name": node.Name, "body": Dump(node.Body)}

	case *Identifier:
		return map[string]any{"kind": "Identifier", "name": node.Name}
	case *Number:
		return map[string]any{"kind": "Number", "value": node.Value}
	case *String:
		return map[string]any{"kind": "String", "value": node.Value}
	case *BinaryOp:
		return map[string]any{
			"kind":     "BinaryOp",
			"operator": node.Op.String(),
			"left":     Dump(node.Left),
			"right":    Dump(node.Right),
		}
	case *UnaryOp:
		return map[string]any{"kind": "UnaryOp", "operator": node.Op.String(), "operand": Dump(node.Operand)}
	case *MemberAccess:
		return map[string]any{"kind": "MemberAccess", "object": Dump(node.Object), "member": node.Member}
	case *FunctionCall:
		return map[string]any{"kind": "FunctionCall", "name": node.Name, "args": dumpExprs(node.Args)}
	case *ClassInstantiation:
		return map[string]any{"kind": "ClassInstantiation", "class_name": node.ClassName, "args": dumpExprs(node.Args)}
	default:
		return map[string]any{"kind": "Unknown"}
	}
}

func dumpStmts(stmts []Stmt) []any {
	out := make([]any, len(stmts))
	for i, s := range stmts {
		out[i] = Dump(s)
	}
	return out
}

func dumpExprs(exprs []Expr) []any {
	out := make([]any, len(exprs))
	for i, e := range exprs {
		out[i] = Dump(e)
	}
	return out
}
