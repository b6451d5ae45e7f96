package i18n

import (
	"strings"
	"sync"
)

// Translator retrieves localized messages for validation error codes.
// data provides optional metadata to embed in the message (for example,
// "name" or "kind"); placeholders are written as {key}.
type Translator interface {
	Message(code string, data map[string]string) string
}

var dictionaries = map[string]map[string]string{
	"en": {
		"bad_element":                       "the element {name} is invalid",
		"bad_ambiguous_element_binding":     "the name {name} is ambiguous",
		"bad_unresolved_type":               "the type {name} could not be found",
		"bad_unresolved_entity_type":        "the entity type {name} could not be found",
		"bad_unresolved_complex_type":       "the complex type {name} could not be found",
		"bad_unresolved_primitive_type":     "the primitive type {name} could not be found",
		"bad_unresolved_property":           "the property {name} could not be found",
		"bad_unresolved_term":               "the term {name} could not be found",
		"bad_unresolved_operation":          "the operation {name} could not be found",
		"bad_unresolved_labeled_element":    "the labeled element {name} could not be found",
		"bad_unresolved_navigation_partner": "the navigation partner {name} could not be found",
		"bad_cyclic_entity":                 "the entity type {name} is part of a cycle of base types",
		"bad_cyclic_complex":                "the complex type {name} is part of a cycle of base types",
		"bad_cyclic_type_definition":        "the type definition {name} has a cyclic underlying type",
		"invalid_name":                      "the name {name} is not a valid simple identifier",
		"invalid_namespace_name":            "the namespace name {name} is not valid",
		"base_type_kind_mismatch":           "the base type {name} has a different kind than the derived type",
		"enum_underlying_type_not_integer":  "the underlying type {name} of an enum must be an integer type",
		"navigation_target_not_entity":      "the navigation target {name} is not an entity type",
		"type_not_supported_in_version":     "the type {name} is not available in version {version}",
		"invalid_expression":                "the expression kind {name} is not valid",
		"invalid_constant":                  "the constant {name} is not valid for its kind",
		"duplicate_document_key":            "the key {name} appears more than once",
		"skipped_declaration":               "a {kind} declaration without a name was skipped",
	},
	"ja": {
		"bad_element":                       "要素 {name} は不正です",
		"bad_ambiguous_element_binding":     "名前 {name} があいまいです",
		"bad_unresolved_type":               "型 {name} が見つかりません",
		"bad_unresolved_entity_type":        "エンティティ型 {name} が見つかりません",
		"bad_unresolved_complex_type":       "複合型 {name} が見つかりません",
		"bad_unresolved_primitive_type":     "プリミティブ型 {name} が見つかりません",
		"bad_unresolved_property":           "プロパティ {name} が見つかりません",
		"bad_unresolved_term":               "ターム {name} が見つかりません",
		"bad_unresolved_operation":          "オペレーション {name} が見つかりません",
		"bad_unresolved_labeled_element":    "ラベル付き要素 {name} が見つかりません",
		"bad_unresolved_navigation_partner": "ナビゲーションのパートナー {name} が見つかりません",
		"bad_cyclic_entity":                 "エンティティ型 {name} の基底型が循環しています",
		"bad_cyclic_complex":                "複合型 {name} の基底型が循環しています",
		"bad_cyclic_type_definition":        "型定義 {name} の基になる型が循環しています",
		"invalid_name":                      "名前 {name} は不正な識別子です",
		"invalid_namespace_name":            "名前空間名 {name} は不正です",
		"base_type_kind_mismatch":           "基底型 {name} の種類が派生型と一致しません",
		"enum_underlying_type_not_integer":  "列挙型の基になる型 {name} は整数型である必要があります",
		"navigation_target_not_entity":      "ナビゲーション先 {name} はエンティティ型ではありません",
		"type_not_supported_in_version":     "型 {name} はバージョン {version} では使用できません",
		"invalid_expression":                "式の種類 {name} は不正です",
		"invalid_constant":                  "定数 {name} は不正です",
		"duplicate_document_key":            "キー {name} が重複しています",
		"skipped_declaration":               "名前のない {kind} 宣言をスキップしました",
	},
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(code string, data map[string]string) string {
	msg, ok := dictionaries[t.lang][code]
	if !ok {
		msg, ok = dictionaries["en"][code]
	}
	if !ok {
		return code
	}
	return expand(msg, data)
}

func expand(msg string, data map[string]string) string {
	if !strings.Contains(msg, "{") {
		return msg
	}
	pairs := make([]string, 0, 2*len(data))
	for k, v := range data {
		pairs = append(pairs, "{"+k+"}", quote(v))
	}
	return strings.NewReplacer(pairs...).Replace(msg)
}

func quote(v string) string { return "'" + v + "'" }

var (
	mu                sync.RWMutex
	currentTranslator Translator = dictTranslator{lang: "en"}
)

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if lang != "ja" {
		lang = "en"
	}
	SetTranslator(dictTranslator{lang: lang})
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version).
func SetTranslator(tr Translator) {
	if tr == nil {
		tr = dictTranslator{lang: "en"}
	}
	mu.Lock()
	currentTranslator = tr
	mu.Unlock()
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string {
	mu.RLock()
	tr := currentTranslator
	mu.RUnlock()
	return tr.Message(code, data)
}
