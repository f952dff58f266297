package extractor

import (
	sitter "github.com/tree-sitter/go-tree-sitter"
	c "github.com/tree-sitter/tree-sitter-c/bindings/go"
	cpp "github.com/tree-sitter/tree-sitter-cpp/bindings/go"
	golang "github.com/tree-sitter/tree-sitter-go/bindings/go"
	java "github.com/tree-sitter/tree-sitter-java/bindings/go"
	javascript "github.com/tree-sitter/tree-sitter-javascript/bindings/go"
	php "github.com/tree-sitter/tree-sitter-php/bindings/go"
	python "github.com/tree-sitter/tree-sitter-python/bindings/go"
	ruby "github.com/tree-sitter/tree-sitter-ruby/bindings/go"
	rust "github.com/tree-sitter/tree-sitter-rust/bindings/go"
	typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"
)

// builtinProfiles returns the per-language node-kind tables. These tables are
// the only place language-specific knowledge lives; the resolver, analyzer,
// and compressor are language-agnostic.
func builtinProfiles() []*LanguageProfile {
	cStyleComments := []blockComment{{Open: "/*", Close: "*/"}}

	return []*LanguageProfile{
		{
			Name:             "python",
			Extensions:       []string{".py", ".pyi"},
			Function:         kinds("function_definition", "lambda"),
			Block:            kinds("block", "function_definition"),
			Comment:          kinds("comment"),
			Identifier:       kinds("identifier"),
			MemberLike:       kinds("attribute"),
			Assignment:       kinds("assignment", "augmented_assignment"),
			Declaration:      kinds(),
			Call:             kinds("call"),
			Loop:             kinds("for_statement", "while_statement"),
			Control:          kinds("if_statement", "elif_clause", "else_clause", "for_statement", "while_statement", "try_statement", "except_clause", "finally_clause", "with_statement", "match_statement", "case_clause"),
			AttachablePrefix: kinds("decorator"),
			AttachableParent: kinds("decorated_definition"),
			ClosingIsBrace:   false,
			LineComment:      "#",
			language:         sitter.NewLanguage(python.Language()),
		},
		{
			Name:           "c",
			Extensions:     []string{".c"},
			Function:       kinds("function_definition"),
			Block:          kinds("compound_statement", "function_definition"),
			Delimited:      kinds("compound_statement", "function_definition"),
			Comment:        kinds("comment"),
			Identifier:     kinds("identifier", "field_identifier"),
			MemberLike:     kinds("field_expression"),
			Assignment:     kinds("assignment_expression"),
			Declaration:    kinds("declaration", "init_declarator"),
			Call:           kinds("call_expression"),
			Loop:           kinds("for_statement", "while_statement", "do_statement"),
			Control:        kinds("if_statement", "for_statement", "while_statement", "do_statement", "switch_statement"),
			ClosingIsBrace: true,
			LineComment:    "//",
			BlockComments:  cStyleComments,
			language:       sitter.NewLanguage(c.Language()),
		},
		{
			Name:             "cpp",
			Extensions:       []string{".cpp", ".cc", ".cxx", ".h", ".hpp", ".hh"},
			Function:         kinds("function_definition", "lambda_expression"),
			Block:            kinds("compound_statement", "lambda_expression", "function_definition"),
			Delimited:        kinds("compound_statement", "lambda_expression", "function_definition"),
			Comment:          kinds("comment"),
			Identifier:       kinds("identifier", "field_identifier"),
			MemberLike:       kinds("field_expression", "qualified_identifier"),
			Assignment:       kinds("assignment_expression", "compound_assignment_expression"),
			Declaration:      kinds("declaration", "init_declarator"),
			Call:             kinds("call_expression"),
			Loop:             kinds("for_statement", "for_range_loop", "while_statement", "do_statement"),
			Control:          kinds("if_statement", "for_statement", "for_range_loop", "while_statement", "do_statement", "switch_statement", "try_statement"),
			AttachablePrefix: kinds("attribute_declaration"),
			ClosingIsBrace:   true,
			LineComment:      "//",
			BlockComments:    cStyleComments,
			language:         sitter.NewLanguage(cpp.Language()),
		},
		{
			Name:             "java",
			Extensions:       []string{".java"},
			Function:         kinds("method_declaration", "constructor_declaration", "lambda_expression"),
			Block:            kinds("block", "lambda_expression"),
			Delimited:        kinds("block", "lambda_expression"),
			Comment:          kinds("line_comment", "block_comment"),
			Identifier:       kinds("identifier"),
			MemberLike:       kinds("field_access", "method_invocation"),
			Assignment:       kinds("assignment_expression"),
			Declaration:      kinds("local_variable_declaration", "variable_declarator"),
			Call:             kinds("method_invocation"),
			Loop:             kinds("for_statement", "enhanced_for_statement", "while_statement", "do_statement"),
			Control:          kinds("if_statement", "for_statement", "enhanced_for_statement", "while_statement", "do_statement", "switch_expression", "try_statement"),
			AttachablePrefix: kinds("marker_annotation", "annotation"),
			ClosingIsBrace:   true,
			LineComment:      "//",
			BlockComments:    cStyleComments,
			language:         sitter.NewLanguage(java.Language()),
		},
		{
			Name:             "javascript",
			Extensions:       []string{".js", ".mjs", ".cjs", ".jsx"},
			Function:         kinds("function_declaration", "function_expression", "method_definition", "arrow_function", "generator_function_declaration"),
			Block:            kinds("statement_block", "function_expression", "method_definition"),
			Delimited:        kinds("statement_block", "function_expression", "method_definition"),
			Comment:          kinds("comment"),
			Identifier:       kinds("identifier", "shorthand_property_identifier", "property_identifier"),
			MemberLike:       kinds("member_expression"),
			Assignment:       kinds("assignment_expression", "augmented_assignment_expression"),
			Declaration:      kinds("variable_declaration", "lexical_declaration", "variable_declarator"),
			Call:             kinds("call_expression"),
			Loop:             kinds("for_statement", "for_in_statement", "while_statement", "do_statement"),
			Control:          kinds("if_statement", "for_statement", "for_in_statement", "while_statement", "do_statement", "switch_statement", "try_statement"),
			AttachablePrefix: kinds("decorator"),
			ClosingIsBrace:   true,
			LineComment:      "//",
			BlockComments:    cStyleComments,
			language:         sitter.NewLanguage(javascript.Language()),
		},
		{
			Name:             "typescript",
			Extensions:       []string{".ts", ".tsx", ".mts", ".cts"},
			Function:         kinds("function_declaration", "function_expression", "method_definition", "arrow_function", "generator_function_declaration"),
			Block:            kinds("statement_block", "function_expression", "method_definition", "class_body"),
			Delimited:        kinds("statement_block", "function_expression", "method_definition", "class_body"),
			Comment:          kinds("comment"),
			Identifier:       kinds("identifier", "shorthand_property_identifier", "property_identifier"),
			MemberLike:       kinds("member_expression", "subscript_expression"),
			Assignment:       kinds("assignment_expression", "augmented_assignment_expression"),
			Declaration:      kinds("variable_declaration", "lexical_declaration", "variable_declarator"),
			Call:             kinds("call_expression"),
			Loop:             kinds("for_statement", "for_in_statement", "while_statement", "do_statement"),
			Control:          kinds("if_statement", "for_statement", "for_in_statement", "while_statement", "do_statement", "switch_statement", "try_statement"),
			AttachablePrefix: kinds("decorator"),
			ClosingIsBrace:   true,
			LineComment:      "//",
			BlockComments:    cStyleComments,
			language:         sitter.NewLanguage(typescript.LanguageTypescript()),
		},
		{
			Name:           "go",
			Extensions:     []string{".go"},
			Function:       kinds("function_declaration", "method_declaration", "func_literal"),
			Block:          kinds("block", "function_declaration", "method_declaration"),
			Delimited:      kinds("block", "function_declaration", "method_declaration"),
			Comment:        kinds("comment"),
			Identifier:     kinds("identifier", "field_identifier"),
			MemberLike:     kinds("selector_expression"),
			Assignment:     kinds("assignment_statement"),
			Declaration:    kinds("short_var_declaration", "var_declaration", "var_spec"),
			Call:           kinds("call_expression"),
			Loop:           kinds("for_statement"),
			Control:        kinds("if_statement", "for_statement", "expression_switch_statement", "type_switch_statement", "select_statement"),
			ClosingIsBrace: true,
			LineComment:    "//",
			BlockComments:  cStyleComments,
			language:       sitter.NewLanguage(golang.Language()),
		},
		{
			Name:           "ruby",
			Extensions:     []string{".rb"},
			Function:       kinds("method", "singleton_method", "lambda"),
			Block:          kinds("block", "do_block", "method", "singleton_method"),
			Delimited:      kinds("block", "do_block", "method", "singleton_method", "if", "unless", "case", "while", "until", "for", "begin"),
			Comment:        kinds("comment"),
			Identifier:     kinds("identifier", "constant"),
			MemberLike:     kinds("call"),
			Assignment:     kinds("assignment", "operator_assignment"),
			Declaration:    kinds(),
			Call:           kinds("call"),
			Loop:           kinds("for", "while", "until"),
			Control:        kinds("if", "elsif", "else", "unless", "case", "when", "for", "while", "until", "rescue", "ensure"),
			ClosingIsBrace: false,
			LineComment:    "#",
			language:       sitter.NewLanguage(ruby.Language()),
		},
		{
			Name:             "rust",
			Extensions:       []string{".rs"},
			Function:         kinds("function_item", "closure_expression"),
			Block:            kinds("block", "function_item"),
			Delimited:        kinds("block", "function_item"),
			Comment:          kinds("line_comment", "block_comment"),
			Identifier:       kinds("identifier", "field_identifier"),
			MemberLike:       kinds("field_expression", "scoped_identifier"),
			Assignment:       kinds("assignment_expression", "compound_assignment_expr"),
			Declaration:      kinds("let_declaration"),
			Call:             kinds("call_expression", "macro_invocation"),
			Loop:             kinds("for_expression", "while_expression", "loop_expression"),
			Control:          kinds("if_expression", "for_expression", "while_expression", "loop_expression", "match_expression"),
			AttachablePrefix: kinds("attribute_item"),
			ClosingIsBrace:   true,
			LineComment:      "//",
			BlockComments:    cStyleComments,
			language:         sitter.NewLanguage(rust.Language()),
		},
		{
			Name:             "php",
			Extensions:       []string{".php"},
			Function:         kinds("function_definition", "method_declaration", "anonymous_function_creation_expression", "arrow_function"),
			Block:            kinds("compound_statement", "function_definition", "method_declaration", "anonymous_function_creation_expression"),
			Delimited:        kinds("compound_statement", "function_definition", "method_declaration", "anonymous_function_creation_expression"),
			Comment:          kinds("comment"),
			Identifier:       kinds("name", "variable_name"),
			MemberLike:       kinds("member_access_expression", "scoped_call_expression"),
			Assignment:       kinds("assignment_expression", "augmented_assignment_expression"),
			Declaration:      kinds(),
			Call:             kinds("function_call_expression", "method_call_expression", "scoped_call_expression"),
			Loop:             kinds("for_statement", "while_statement", "foreach_statement", "do_statement"),
			Control:          kinds("if_statement", "for_statement", "while_statement", "foreach_statement", "do_statement", "switch_statement", "try_statement"),
			AttachablePrefix: kinds("attribute_list"),
			ClosingIsBrace:   true,
			LineComment:      "//",
			BlockComments:    cStyleComments,
			language:         sitter.NewLanguage(php.LanguagePHP()),
		},
	}
}
