// Package skills canonicalizes free-form skill and requirement strings into a
// fixed vocabulary and matches them fuzzily.
package skills

import (
	"strings"
	"sync"
)

// aliasEntry maps a canonical skill name to its known spellings.
type aliasEntry struct {
	Canonical string
	Aliases   []string
}

// registry is the static source of the alias table. Order matters: when two
// entries claim the same key, the earlier one wins.
var registry = []aliasEntry{
	{"JavaScript", []string{"js", "javascript", "java script", "ecmascript", "es6"}},
	{"TypeScript", []string{"ts", "typescript"}},
	{"Node.js", []string{"node", "nodejs", "node.js", "node js"}},
	{"React", []string{"react", "reactjs", "react.js", "react js"}},
	{"React Native", []string{"react native", "react-native"}},
	{"Next.js", []string{"next", "nextjs", "next.js"}},
	{"Vue", []string{"vue", "vuejs", "vue.js"}},
	{"Angular", []string{"angular", "angularjs", "angular.js"}},
	{"Python", []string{"py", "python", "python3"}},
	{"Go", []string{"go", "golang", "go lang"}},
	{"Java", []string{"java"}},
	{"C++", []string{"c++", "cpp"}},
	{"C#", []string{"c#", "csharp", "c sharp"}},
	{"Rust", []string{"rust"}},
	{"Ruby on Rails", []string{"rails", "ruby on rails", "ror"}},
	{"SQL", []string{"sql"}},
	{"PostgreSQL", []string{"postgres", "postgresql", "psql", "postgre sql"}},
	{"MySQL", []string{"mysql", "my sql"}},
	{"SQL Server", []string{"ms sql", "mssql", "sql server", "microsoft sql server"}},
	{"MongoDB", []string{"mongo", "mongodb"}},
	{"Redis", []string{"redis"}},
	{"GraphQL", []string{"graphql", "graph ql"}},
	{"REST", []string{"rest", "restful", "rest api", "rest apis", "restful apis"}},
	{"gRPC", []string{"grpc"}},
	{"AWS", []string{"aws", "amazon web services"}},
	{"GCP", []string{"gcp", "google cloud", "google cloud platform"}},
	{"Azure", []string{"azure", "microsoft azure"}},
	{"Kubernetes", []string{"k8s", "kubernetes", "kube"}},
	{"Docker", []string{"docker", "docker compose", "docker-compose"}},
	{"Terraform", []string{"terraform", "tf"}},
	{"CI/CD", []string{"ci/cd", "cicd", "ci cd", "continuous integration"}},
	{"Git", []string{"git"}},
	{"GitHub Actions", []string{"github actions", "gh actions"}},
	{"Linux", []string{"linux", "unix"}},
	{"HTML", []string{"html", "html5"}},
	{"CSS", []string{"css", "css3"}},
	{"FastAPI", []string{"fast api", "fastapi"}},
	{"Django", []string{"django"}},
	{"Flask", []string{"flask"}},
	{"Spring", []string{"spring", "spring boot", "springboot"}},
	{"TensorFlow", []string{"tensorflow", "tensor flow", "tf2"}},
	{"PyTorch", []string{"pytorch", "torch"}},
	{"scikit-learn", []string{"scikit-learn", "sklearn", "scikit learn"}},
	{"Machine Learning", []string{"ml", "machine learning"}},
	{"NLP", []string{"nlp", "natural language processing"}},
	{"ETL", []string{"etl"}},
	{"Apache Kafka", []string{"kafka", "apache kafka"}},
	{"Apache Spark", []string{"spark", "apache spark", "pyspark"}},
	{"RabbitMQ", []string{"rabbitmq", "rabbit mq", "amqp"}},
	{"iOS", []string{"ios"}},
	{"macOS", []string{"macos", "mac os", "osx"}},
	{"Jenkins", []string{"jenkins"}},
	{"Microservices", []string{"microservices", "micro services", "microservice architecture"}},
}

// AliasTable resolves normalized alias keys to canonical skill names. It is
// immutable after construction and safe for concurrent use.
type AliasTable struct {
	byKey map[string]string
	scan  []scanPattern
}

// NewAliasTable builds a table from canonical → aliases pairs. Each canonical
// name is also registered under its own key.
func NewAliasTable(entries []aliasEntry) *AliasTable {
	t := &AliasTable{byKey: make(map[string]string, len(entries)*4)}
	for _, e := range entries {
		t.add(e.Canonical, e.Canonical)
		for _, alias := range e.Aliases {
			t.add(alias, e.Canonical)
		}
	}
	t.scan = buildScanPatterns(entries)
	return t
}

func (t *AliasTable) add(alias, canonical string) {
	key := lookupKey(alias)
	if key == "" {
		return
	}
	if _, exists := t.byKey[key]; !exists {
		t.byKey[key] = canonical
	}
	compact := compactKey(key)
	if _, exists := t.byKey[compact]; !exists && compact != "" {
		t.byKey[compact] = canonical
	}
}

// Lookup returns the canonical name for an already-normalized key.
func (t *AliasTable) Lookup(key string) (string, bool) {
	if c, ok := t.byKey[key]; ok {
		return c, true
	}
	c, ok := t.byKey[compactKey(key)]
	return c, ok
}

// Len returns the number of keys in the table.
func (t *AliasTable) Len() int {
	return len(t.byKey)
}

// DefaultAliasTable returns the process-wide table built from the static
// registry on first use.
var DefaultAliasTable = sync.OnceValue(func() *AliasTable {
	return NewAliasTable(registry)
})

// compactKey drops spaces, dots and hyphens so "react js", "react.js" and
// "reactjs" share a key.
func compactKey(key string) string {
	return strings.NewReplacer(" ", "", ".", "", "-", "").Replace(key)
}
