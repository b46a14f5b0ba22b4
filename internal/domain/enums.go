package domain

// Record status labels shared by several collections.
const (
	StatusAtivo         = "Ativo"
	StatusEmExperiencia = "Em Experiência"
	StatusDesligado     = "Desligado"
)

// Sectors lists the partner company sectors offered by the registration form.
var Sectors = []string{
	"Varejo",
	"Alimentação",
	"Moda",
	"Serviços",
	"Indústria",
	"Saúde",
	"Educação",
}

// Roles lists staff roles.
var Roles = []string{
	"Coordenador Geral",
	"Professor Avaliador",
	"Consultora de RH",
	"Assistente Administrativo",
	"Psicólogo",
	"Assistente Social",
}

// Departments lists staff departments.
var Departments = []string{
	"Coordenação",
	"Avaliação",
	"Recursos Humanos",
	"Administrativo",
	"Psicologia",
	"Serviço Social",
}

// Permission ids a funcionario may carry.
var Permissions = []string{"admin", "users", "companies", "evaluations", "basic"}

// Evaluation kinds: first or second trial-period evaluation.
const (
	AvaliacaoFirst  = "first"
	AvaliacaoSecond = "second"
)

// RespostaLevels are the four response levels for evaluation questions.
var RespostaLevels = []string{"sim", "maioria", "raras", "nao"}

// TrialQuestions are the ten fixed trial-period evaluation questions,
// indexed by their position in Avaliacao.Respostas.
var TrialQuestions = []string{
	"Demonstra interesse pelas atividades propostas?",
	"Participa ativamente das dinâmicas de grupo?",
	"Apresenta pontualidade e assiduidade?",
	"Mantém relacionamento respeitoso com colegas?",
	"Segue orientações dos professores/instrutores?",
	"Demonstra autonomia para tarefas básicas?",
	"Apresenta iniciativa para resolver problemas?",
	"Mantém organização pessoal e do ambiente?",
	"Demonstra controle emocional adequado?",
	"Apresenta potencial para atividades laborais?",
}

// ParticipacaoLevels grade family participation in a parent interview.
var ParticipacaoLevels = []string{"Alto", "Médio", "Baixo"}

// AutonomiaLevels grade how much the family encourages autonomy.
var AutonomiaLevels = []string{"Muito Bom", "Bom", "Regular", "Insuficiente"}

// PlacementStatuses are the work placement statuses.
var PlacementStatuses = []string{StatusEmExperiencia, StatusAtivo, StatusDesligado}

// InSet reports whether v is one of the allowed values.
func InSet(v string, set []string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}
