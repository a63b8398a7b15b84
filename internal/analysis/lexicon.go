package analysis

import (
	"errors"
	"fmt"
	"strings"
)

// Term is a canonical skill or concept with the phrases that name it.
// Aliases match lowercase tokens; Exact phrases match the original casing,
// for names that collide with ordinary words ("Go", "C").
type Term struct {
	Name    string   `json:"name"`
	Group   string   `json:"group"`
	Aliases []string `json:"aliases,omitempty"`
	Exact   []string `json:"exact,omitempty"`
}

// Lexicon is the vocabulary the keyword producer recognizes.
type Lexicon struct {
	Terms []Term `json:"terms"`

	compiled []compiledTerm
}

type compiledTerm struct {
	aliases [][]string
	exact   [][]string
}

// Validate checks that every term has a name and at least one phrase.
func (l *Lexicon) Validate() error {
	if l == nil || len(l.Terms) == 0 {
		return errors.New("lexicon has no terms")
	}
	seen := make(map[string]bool, len(l.Terms))
	for i, t := range l.Terms {
		if strings.TrimSpace(t.Name) == "" {
			return fmt.Errorf("term %d has no name", i)
		}
		if len(t.Aliases) == 0 && len(t.Exact) == 0 {
			return fmt.Errorf("term %q has no aliases", t.Name)
		}
		key := strings.ToLower(t.Name)
		if seen[key] {
			return fmt.Errorf("duplicate term %q", t.Name)
		}
		seen[key] = true
	}
	return nil
}

func (l *Lexicon) compile() {
	if l.compiled != nil {
		return
	}
	compiled := make([]compiledTerm, len(l.Terms))
	for i, t := range l.Terms {
		for _, a := range t.Aliases {
			if toks := lowerTokens(a); len(toks) > 0 {
				compiled[i].aliases = append(compiled[i].aliases, toks)
			}
		}
		for _, e := range t.Exact {
			if toks := tokenize(e); len(toks) > 0 {
				compiled[i].exact = append(compiled[i].exact, toks)
			}
		}
	}
	l.compiled = compiled
}

// termHit is the first position of a term within a sentence.
type termHit struct {
	term int
	pos  int
}

// match returns the terms found in the sentence, each once, at first position.
func (l *Lexicon) match(s Sentence) []termHit {
	var hits []termHit
	for i, ct := range l.compiled {
		pos := -1
		for _, phrase := range ct.aliases {
			if p := indexPhrase(s.Lower, phrase); p >= 0 && (pos < 0 || p < pos) {
				pos = p
			}
		}
		for _, phrase := range ct.exact {
			if p := indexPhrase(s.Tokens, phrase); p >= 0 && (pos < 0 || p < pos) {
				pos = p
			}
		}
		if pos >= 0 {
			hits = append(hits, termHit{term: i, pos: pos})
		}
	}
	return hits
}

// DefaultLexicon returns the built-in vocabulary.
func DefaultLexicon() *Lexicon {
	lex := &Lexicon{Terms: []Term{
		{Name: "Java", Group: "language", Aliases: []string{"java"}},
		{Name: "C", Group: "language", Exact: []string{"C"}},
		{Name: "C++", Group: "language", Aliases: []string{"c++", "cpp"}},
		{Name: "C#", Group: "language", Aliases: []string{"c#", "dotnet"}},
		{Name: "Python", Group: "language", Aliases: []string{"python"}},
		{Name: "Go", Group: "language", Aliases: []string{"golang"}, Exact: []string{"Go"}},
		{Name: "Rust", Group: "language", Aliases: []string{"rust"}},
		{Name: "JavaScript", Group: "language", Aliases: []string{"javascript", "ecmascript"}, Exact: []string{"JS"}},
		{Name: "TypeScript", Group: "language", Aliases: []string{"typescript"}},
		{Name: "Ruby", Group: "language", Aliases: []string{"ruby"}},
		{Name: "PHP", Group: "language", Aliases: []string{"php"}},
		{Name: "Kotlin", Group: "language", Aliases: []string{"kotlin"}},
		{Name: "Swift", Group: "language", Aliases: []string{"swift"}},
		{Name: "Scala", Group: "language", Aliases: []string{"scala"}},
		{Name: "HTML", Group: "language", Aliases: []string{"html", "html5"}},
		{Name: "CSS", Group: "language", Aliases: []string{"css", "css3", "tailwind"}},
		{Name: "Bash", Group: "language", Aliases: []string{"bash", "shell scripting"}},
		{Name: "React", Group: "framework", Aliases: []string{"react", "reactjs", "react js", "next js", "nextjs"}},
		{Name: "Angular", Group: "framework", Aliases: []string{"angular", "angularjs"}},
		{Name: "Vue", Group: "framework", Aliases: []string{"vue", "vuejs", "vue js"}},
		{Name: "Node.js", Group: "framework", Aliases: []string{"node js", "nodejs", "node"}},
		{Name: "Django", Group: "framework", Aliases: []string{"django"}},
		{Name: "Flask", Group: "framework", Aliases: []string{"flask"}},
		{Name: "Spring", Group: "framework", Aliases: []string{"spring boot", "spring"}},
		{Name: "API", Group: "practice", Aliases: []string{"api", "apis", "restful", "rest api"}},
		{Name: "GraphQL", Group: "practice", Aliases: []string{"graphql"}},
		{Name: "Git", Group: "tool", Aliases: []string{"git", "github", "gitlab"}},
		{Name: "Docker", Group: "tool", Aliases: []string{"docker", "containers", "containerization"}},
		{Name: "Kubernetes", Group: "tool", Aliases: []string{"kubernetes", "k8s"}},
		{Name: "Terraform", Group: "tool", Aliases: []string{"terraform", "infrastructure as code"}},
		{Name: "Linux", Group: "tool", Aliases: []string{"linux", "unix"}},
		{Name: "AWS", Group: "cloud", Aliases: []string{"aws", "amazon web services", "ec2", "lambda"}},
		{Name: "GCP", Group: "cloud", Aliases: []string{"gcp", "google cloud"}},
		{Name: "Azure", Group: "cloud", Aliases: []string{"azure"}},
		{Name: "SQL", Group: "data", Aliases: []string{"sql", "mysql", "postgresql", "postgres", "relational database", "relational databases", "sqlite"}},
		{Name: "NoSQL", Group: "data", Aliases: []string{"nosql", "mongodb", "dynamodb", "cassandra"}},
		{Name: "Redis", Group: "data", Aliases: []string{"redis"}},
		{Name: "Kafka", Group: "data", Aliases: []string{"kafka", "rabbitmq", "message queue", "message queues"}},
		{Name: "machine learning", Group: "data", Aliases: []string{"machine learning", "deep learning", "pytorch", "tensorflow"}},
		{Name: "microservices", Group: "practice", Aliases: []string{"microservices", "microservice", "micro services"}},
		{Name: "distributed systems", Group: "practice", Aliases: []string{"distributed systems", "distributed system", "distributed computing"}},
		{Name: "scalability", Group: "practice", Aliases: []string{"scalability", "scalable", "high scale"}},
		{Name: "fault-tolerant", Group: "practice", Aliases: []string{"fault tolerant", "fault tolerance", "high availability", "resilient"}},
		{Name: "monitoring", Group: "practice", Aliases: []string{"monitoring", "observability", "alerting", "prometheus", "grafana"}},
		{Name: "CI/CD", Group: "practice", Aliases: []string{"ci cd", "continuous integration", "continuous delivery", "continuous deployment", "github actions", "jenkins"}},
		{Name: "testing", Group: "practice", Aliases: []string{"unit testing", "unit tests", "integration tests", "test driven", "tdd", "automated testing"}},
		{Name: "Agile", Group: "practice", Aliases: []string{"agile", "scrum", "kanban"}},
		{Name: "operating systems", Group: "fundamentals", Aliases: []string{"operating systems", "operating system", "os internals", "kernel"}},
		{Name: "Big-O", Group: "fundamentals", Aliases: []string{"big o", "complexity analysis", "time complexity", "asymptotic"}},
		{Name: "data structures", Group: "fundamentals", Aliases: []string{"data structures", "data structure"}},
		{Name: "algorithms", Group: "fundamentals", Aliases: []string{"algorithms", "algorithm", "algorithmic"}},
		{Name: "networking", Group: "fundamentals", Aliases: []string{"networking", "tcp ip", "tcp", "http"}},
		{Name: "security", Group: "fundamentals", Aliases: []string{"security", "oauth", "authentication", "encryption"}},
	}}
	lex.compile()
	return lex
}
