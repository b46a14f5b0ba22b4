package domain

// Usuario is a program participant.
type Usuario struct {
	ID               string `json:"id,omitempty"`
	FullName         string `json:"fullName" validate:"required"`
	BirthDate        string `json:"birthDate" validate:"required"`
	RG               string `json:"rg"`
	CPF              string `json:"cpf"`
	Address          string `json:"address"`
	Phone            string `json:"phone"`
	ParentName       string `json:"parentName"`
	ParentPhone      string `json:"parentPhone"`
	EmergencyContact string `json:"emergencyContact"`
	AdmissionDate    string `json:"admissionDate" validate:"required"`
	Observations     string `json:"observations"`
	Status           string `json:"status,omitempty"`
	CreatedAt        string `json:"createdAt,omitempty" format:"date-time"`
}

func (u Usuario) RecordID() string { return u.ID }

// Empresa is a partner company.
type Empresa struct {
	ID                 string   `json:"id,omitempty"`
	Name               string   `json:"name" validate:"required"`
	CNPJ               string   `json:"cnpj"`
	Sector             string   `json:"sector" validate:"required,sector"`
	Address            string   `json:"address"`
	Phone              string   `json:"phone"`
	Email              string   `json:"email" validate:"omitempty,email"`
	HRContact          string   `json:"hrContact"`
	HRPhone            string   `json:"hrPhone"`
	HREmail            string   `json:"hrEmail" validate:"omitempty,email"`
	AvailablePositions []string `json:"availablePositions"`
	Observations       string   `json:"observations"`
	ActiveUsers        int      `json:"activeUsers"`
	TotalHired         int      `json:"totalHired"`
	LastContact        string   `json:"lastContact,omitempty"`
	Status             string   `json:"status,omitempty"`
}

func (e Empresa) RecordID() string { return e.ID }

// Funcionario is an internal staff member. Password travels and is stored
// as plain text; the record store trusts the caller end to end.
type Funcionario struct {
	ID               string   `json:"id,omitempty"`
	FullName         string   `json:"fullName" validate:"required"`
	Email            string   `json:"email" validate:"required,email"`
	Phone            string   `json:"phone"`
	CPF              string   `json:"cpf"`
	RG               string   `json:"rg"`
	BirthDate        string   `json:"birthDate"`
	Address          string   `json:"address"`
	Role             string   `json:"role" validate:"required,staffrole"`
	Department       string   `json:"department" validate:"required,department"`
	AdmissionDate    string   `json:"admissionDate"`
	Salary           string   `json:"salary"`
	WorkSchedule     string   `json:"workSchedule"`
	Observations     string   `json:"observations"`
	Password         string   `json:"password" validate:"required,min=4"`
	Status           string   `json:"status,omitempty"`
	Permissions      []string `json:"permissions,omitempty"`
	LastLogin        string   `json:"lastLogin,omitempty"`
	EvaluationsCount int      `json:"evaluationsCount"`
	VisitsCount      int      `json:"visitsCount"`
}

func (f Funcionario) RecordID() string { return f.ID }

// Avaliacao is a trial-period evaluation. Respostas maps the fixed
// question index (0..9) to one of the response levels.
type Avaliacao struct {
	ID            string         `json:"id,omitempty"`
	UsuarioID     string         `json:"usuarioId" validate:"required"`
	UsuarioNome   string         `json:"usuarioNome"`
	TipoAvaliacao string         `json:"tipoAvaliacao" enum:"first,second" validate:"required,avaliacaotipo"`
	DataAvaliacao string         `json:"dataAvaliacao" validate:"required"`
	Respostas     map[int]string `json:"respostas" validate:"dive,resposta"`
	Observacoes   string         `json:"observacoes"`
	Avaliador     string         `json:"avaliador"`
	CreatedAt     string         `json:"createdAt,omitempty" format:"date-time"`
}

func (a Avaliacao) RecordID() string { return a.ID }

// ParentInterview records a guardian interview for a participant.
type ParentInterview struct {
	ID                   string `json:"id,omitempty"`
	UsuarioID            string `json:"usuarioId" validate:"required"`
	UsuarioNome          string `json:"usuarioNome"`
	DataEntrevista       string `json:"dataEntrevista" validate:"required"`
	Entrevistador        string `json:"entrevistador" validate:"required"`
	Resumo               string `json:"resumo"`
	ParticipacaoFamiliar string `json:"participacaoFamiliar" validate:"omitempty,participacao"`
	ParecerApoio         string `json:"parecerApoio"`
	EstimuloAutonomia    string `json:"estimuloAutonomia" validate:"omitempty,autonomia"`
	RegistrosProtecao    string `json:"registrosProtecao"`
	CreatedAt            string `json:"createdAt,omitempty" format:"date-time"`
}

func (p ParentInterview) RecordID() string { return p.ID }

// WorkPlacement is a job placement referral for a participant.
type WorkPlacement struct {
	ID                      string `json:"id,omitempty"`
	UsuarioID               string `json:"usuarioId" validate:"required"`
	UsuarioNome             string `json:"usuarioNome"`
	Empresa                 string `json:"empresa" validate:"required"`
	Cargo                   string `json:"cargo" validate:"required"`
	DataAdmissao            string `json:"dataAdmissao"`
	ContatoRH               string `json:"contatoRH"`
	TelefoneRH              string `json:"telefoneRH"`
	DataProvaveDesligamento string `json:"dataProvaveDesligamento"`
	Status                  string `json:"status" validate:"required,placementstatus"`
	CreatedAt               string `json:"createdAt,omitempty" format:"date-time"`
}

func (w WorkPlacement) RecordID() string { return w.ID }

// Identity is the authenticated staff member's public profile, held by the
// session container and persisted to the side channel.
type Identity struct {
	ID          string   `json:"id"`
	FullName    string   `json:"fullName"`
	Email       string   `json:"email"`
	Role        string   `json:"role"`
	Permissions []string `json:"permissions"`
}
