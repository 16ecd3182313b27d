// Package filtres compiles filter expressions into Elasticsearch filtered
// query documents.
//
//    height < 73 or favorites.color == "green"
//
// compiles to
//
//    {"query": {"filtered": {"filter": [
//        {"bool": {"should": [
//            {"range": {"height": {"lt": 73}}},
//            {"term": {"favorites.color": "green"}}
//        ]}}
//    ]}}}
//
// The expression language has field comparisons (== != < <= > >=), regex
// matching (~= ~!=) against double quoted patterns, and/or/not, grouping
// parens and unary minus on numbers.  Includes the Lexer (lex), Parser
// (expr) and the Elasticsearch generator (generators/elasticsearch).
package filtres
