package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"amparo/internal/app"
	"amparo/internal/domain"
	"amparo/internal/format"
	"amparo/internal/notify"
	"amparo/internal/state"
	"amparo/internal/validate"
)

func avaliacaoCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "avaliacao", Short: "Manage trial-period evaluations"}
	cmd.AddCommand(avaliacaoListCmd())
	cmd.AddCommand(avaliacaoCreateCmd())
	cmd.AddCommand(avaliacaoDeleteCmd())
	return cmd
}

func avaliacaoListCmd() *cobra.Command {
	var usuarioID string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List evaluations, optionally for one participant",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withAuthedApp(cmd.Context(), func(ctx context.Context, a *app.App) error {
				if usuarioID != "" {
					a.Avaliacoes.FetchByUsuario(ctx, usuarioID)
				} else {
					a.Avaliacoes.FetchAll(ctx)
				}
				snap := a.Avaliacoes.Snapshot()
				if snap.Err != "" {
					return snapErr(snap.Err)
				}
				if viper.GetBool("json") {
					return printJSON(snap.Items)
				}
				t := newTable()
				t.AppendHeader(table.Row{"ID", "Usuário", "Tipo", "Data", "Avaliador"})
				for _, av := range snap.Items {
					t.AppendRow(table.Row{av.ID, av.UsuarioNome, av.TipoAvaliacao, av.DataAvaliacao, av.Avaliador})
				}
				t.Render()
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&usuarioID, "usuario", "", "filter by participant id")
	return cmd
}

func avaliacaoCreateCmd() *cobra.Command {
	var av domain.Avaliacao
	var respostas []string
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Record a trial-period evaluation",
		RunE: func(cmd *cobra.Command, args []string) error {
			parsed, err := parseRespostas(respostas)
			if err != nil {
				return err
			}
			av.Respostas = parsed
			if err := validate.Struct(av); err != nil {
				return err
			}
			return withAuthedApp(cmd.Context(), func(ctx context.Context, a *app.App) error {
				a.Usuarios.FetchAll(ctx)
				created, ok := a.Avaliacoes.Create(ctx, av)
				if !ok {
					return childErr(a.Avaliacoes.LastError(), a.Avaliacoes.Snapshot().Err)
				}
				notify.Success("avaliacao recorded for %s (id %s)", created.UsuarioNome, created.ID)
				return nil
			})
		},
	}
	f := cmd.Flags()
	f.StringVar(&av.UsuarioID, "usuario", "", "participant id")
	f.StringVar(&av.TipoAvaliacao, "tipo", "", "evaluation type (first|second)")
	f.StringVar(&av.DataAvaliacao, "data", "", "evaluation date (YYYY-MM-DD)")
	f.StringArrayVar(&respostas, "resposta", nil, "answer as index=level, e.g. 0=sim (repeatable)")
	f.StringVar(&av.Observacoes, "observacoes", "", "free-text notes")
	f.StringVar(&av.Avaliador, "avaliador", "", "evaluator name")
	_ = cmd.MarkFlagRequired("usuario")
	_ = cmd.MarkFlagRequired("tipo")
	_ = cmd.MarkFlagRequired("data")
	return cmd
}

func avaliacaoDeleteCmd() *cobra.Command {
	var id string
	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete an evaluation",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !confirm(fmt.Sprintf("delete avaliacao %s?", id)) {
				notify.Info("canceled")
				return nil
			}
			return withAuthedApp(cmd.Context(), func(ctx context.Context, a *app.App) error {
				if !a.Avaliacoes.Delete(ctx, id) {
					return snapErr(a.Avaliacoes.Snapshot().Err)
				}
				notify.Success("avaliacao %s deleted", id)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&id, "id", "", "evaluation id")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}

func entrevistaCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "entrevista", Short: "Manage guardian interviews"}
	cmd.AddCommand(entrevistaListCmd())
	cmd.AddCommand(entrevistaCreateCmd())
	cmd.AddCommand(entrevistaDeleteCmd())
	return cmd
}

func entrevistaListCmd() *cobra.Command {
	var usuarioID string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List guardian interviews, optionally for one participant",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withAuthedApp(cmd.Context(), func(ctx context.Context, a *app.App) error {
				if usuarioID != "" {
					a.Entrevistas.FetchByUsuario(ctx, usuarioID)
				} else {
					a.Entrevistas.FetchAll(ctx)
				}
				snap := a.Entrevistas.Snapshot()
				if snap.Err != "" {
					return snapErr(snap.Err)
				}
				if viper.GetBool("json") {
					return printJSON(snap.Items)
				}
				t := newTable()
				t.AppendHeader(table.Row{"ID", "Usuário", "Data", "Entrevistador", "Participação"})
				for _, e := range snap.Items {
					t.AppendRow(table.Row{e.ID, e.UsuarioNome, e.DataEntrevista, e.Entrevistador, e.ParticipacaoFamiliar})
				}
				t.Render()
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&usuarioID, "usuario", "", "filter by participant id")
	return cmd
}

func entrevistaCreateCmd() *cobra.Command {
	var e domain.ParentInterview
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Record a guardian interview",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validate.Struct(e); err != nil {
				return err
			}
			return withAuthedApp(cmd.Context(), func(ctx context.Context, a *app.App) error {
				a.Usuarios.FetchAll(ctx)
				created, ok := a.Entrevistas.Create(ctx, e)
				if !ok {
					return childErr(a.Entrevistas.LastError(), a.Entrevistas.Snapshot().Err)
				}
				notify.Success("entrevista recorded for %s (id %s)", created.UsuarioNome, created.ID)
				return nil
			})
		},
	}
	f := cmd.Flags()
	f.StringVar(&e.UsuarioID, "usuario", "", "participant id")
	f.StringVar(&e.DataEntrevista, "data", "", "interview date (YYYY-MM-DD)")
	f.StringVar(&e.Entrevistador, "entrevistador", "", "interviewer name")
	f.StringVar(&e.Resumo, "resumo", "", "interview summary")
	f.StringVar(&e.ParticipacaoFamiliar, "participacao", "", "family involvement (Alto|Médio|Baixo)")
	f.StringVar(&e.ParecerApoio, "parecer", "", "support assessment")
	f.StringVar(&e.EstimuloAutonomia, "autonomia", "", "autonomy encouragement level")
	f.StringVar(&e.RegistrosProtecao, "protecao", "", "protective-services notes")
	_ = cmd.MarkFlagRequired("usuario")
	_ = cmd.MarkFlagRequired("data")
	_ = cmd.MarkFlagRequired("entrevistador")
	return cmd
}

func entrevistaDeleteCmd() *cobra.Command {
	var id string
	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete a guardian interview",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !confirm(fmt.Sprintf("delete entrevista %s?", id)) {
				notify.Info("canceled")
				return nil
			}
			return withAuthedApp(cmd.Context(), func(ctx context.Context, a *app.App) error {
				if !a.Entrevistas.Delete(ctx, id) {
					return snapErr(a.Entrevistas.Snapshot().Err)
				}
				notify.Success("entrevista %s deleted", id)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&id, "id", "", "interview id")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}

func encaminhamentoCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "encaminhamento", Short: "Manage job placement referrals"}
	cmd.AddCommand(encaminhamentoListCmd())
	cmd.AddCommand(encaminhamentoCreateCmd())
	cmd.AddCommand(encaminhamentoUpdateCmd())
	cmd.AddCommand(encaminhamentoDeleteCmd())
	return cmd
}

func encaminhamentoListCmd() *cobra.Command {
	var usuarioID string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List placement referrals, optionally for one participant",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withAuthedApp(cmd.Context(), func(ctx context.Context, a *app.App) error {
				if usuarioID != "" {
					a.Encaminhamentos.FetchByUsuario(ctx, usuarioID)
				} else {
					a.Encaminhamentos.FetchAll(ctx)
				}
				snap := a.Encaminhamentos.Snapshot()
				if snap.Err != "" {
					return snapErr(snap.Err)
				}
				if viper.GetBool("json") {
					return printJSON(snap.Items)
				}
				t := newTable()
				t.AppendHeader(table.Row{"ID", "Usuário", "Empresa", "Cargo", "Admissão", "Status"})
				for _, w := range snap.Items {
					t.AppendRow(table.Row{w.ID, w.UsuarioNome, w.Empresa, w.Cargo, w.DataAdmissao, w.Status})
				}
				t.Render()
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&usuarioID, "usuario", "", "filter by participant id")
	return cmd
}

func encaminhamentoCreateCmd() *cobra.Command {
	var w domain.WorkPlacement
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Record a job placement referral",
		RunE: func(cmd *cobra.Command, args []string) error {
			if w.Status == "" {
				w.Status = domain.StatusEmExperiencia
			}
			w.TelefoneRH = format.Phone(w.TelefoneRH)
			if err := validate.Struct(w); err != nil {
				return err
			}
			return withAuthedApp(cmd.Context(), func(ctx context.Context, a *app.App) error {
				a.Usuarios.FetchAll(ctx)
				created, ok := a.Encaminhamentos.Create(ctx, w)
				if !ok {
					return childErr(a.Encaminhamentos.LastError(), a.Encaminhamentos.Snapshot().Err)
				}
				notify.Success("encaminhamento recorded for %s at %s (id %s)", created.UsuarioNome, created.Empresa, created.ID)
				return nil
			})
		},
	}
	f := cmd.Flags()
	f.StringVar(&w.UsuarioID, "usuario", "", "participant id")
	f.StringVar(&w.Empresa, "empresa", "", "company name")
	f.StringVar(&w.Cargo, "cargo", "", "position")
	f.StringVar(&w.DataAdmissao, "admissao", "", "hiring date (YYYY-MM-DD)")
	f.StringVar(&w.ContatoRH, "contato-rh", "", "HR contact name")
	f.StringVar(&w.TelefoneRH, "telefone-rh", "", "HR phone")
	f.StringVar(&w.DataProvaveDesligamento, "desligamento-previsto", "", "expected end date")
	f.StringVar(&w.Status, "status", "", "placement status (default Em Experiência)")
	_ = cmd.MarkFlagRequired("usuario")
	_ = cmd.MarkFlagRequired("empresa")
	_ = cmd.MarkFlagRequired("cargo")
	return cmd
}

func encaminhamentoUpdateCmd() *cobra.Command {
	var id string
	var w domain.WorkPlacement
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update a placement referral (only supplied fields change)",
		RunE: func(cmd *cobra.Command, args []string) error {
			patch := map[string]any{}
			addChanged(cmd, patch, "empresa", "empresa", w.Empresa)
			addChanged(cmd, patch, "cargo", "cargo", w.Cargo)
			addChanged(cmd, patch, "admissao", "dataAdmissao", w.DataAdmissao)
			addChanged(cmd, patch, "contato-rh", "contatoRH", w.ContatoRH)
			addChanged(cmd, patch, "telefone-rh", "telefoneRH", format.Phone(w.TelefoneRH))
			addChanged(cmd, patch, "desligamento-previsto", "dataProvaveDesligamento", w.DataProvaveDesligamento)
			addChanged(cmd, patch, "status", "status", w.Status)
			if len(patch) == 0 {
				return fmt.Errorf("nothing to update; supply at least one field flag")
			}
			if s, ok := patch["status"].(string); ok && !domain.InSet(s, domain.PlacementStatuses) {
				return fmt.Errorf("invalid status %q", s)
			}
			return withAuthedApp(cmd.Context(), func(ctx context.Context, a *app.App) error {
				updated, ok := a.Encaminhamentos.Update(ctx, id, patch)
				if !ok {
					return snapErr(a.Encaminhamentos.Snapshot().Err)
				}
				notify.Success("encaminhamento %s updated", updated.ID)
				return nil
			})
		},
	}
	f := cmd.Flags()
	f.StringVar(&id, "id", "", "referral id")
	f.StringVar(&w.Empresa, "empresa", "", "company name")
	f.StringVar(&w.Cargo, "cargo", "", "position")
	f.StringVar(&w.DataAdmissao, "admissao", "", "hiring date")
	f.StringVar(&w.ContatoRH, "contato-rh", "", "HR contact name")
	f.StringVar(&w.TelefoneRH, "telefone-rh", "", "HR phone")
	f.StringVar(&w.DataProvaveDesligamento, "desligamento-previsto", "", "expected end date")
	f.StringVar(&w.Status, "status", "", "placement status")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}

func encaminhamentoDeleteCmd() *cobra.Command {
	var id string
	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete a placement referral",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !confirm(fmt.Sprintf("delete encaminhamento %s?", id)) {
				notify.Info("canceled")
				return nil
			}
			return withAuthedApp(cmd.Context(), func(ctx context.Context, a *app.App) error {
				if !a.Encaminhamentos.Delete(ctx, id) {
					return snapErr(a.Encaminhamentos.Snapshot().Err)
				}
				notify.Success("encaminhamento %s deleted", id)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&id, "id", "", "referral id")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}

// parseRespostas turns index=level pairs into the answer map, rejecting
// out-of-range indexes and unknown levels up front.
func parseRespostas(pairs []string) (map[int]string, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	out := make(map[int]string, len(pairs))
	for _, p := range pairs {
		idx, level, found := strings.Cut(p, "=")
		if !found {
			return nil, fmt.Errorf("malformed resposta %q: expected index=level", p)
		}
		i, err := strconv.Atoi(idx)
		if err != nil || i < 0 || i >= len(domain.TrialQuestions) {
			return nil, fmt.Errorf("resposta index %q out of range 0..%d", idx, len(domain.TrialQuestions)-1)
		}
		if !domain.InSet(level, domain.RespostaLevels) {
			return nil, fmt.Errorf("unknown resposta level %q", level)
		}
		out[i] = level
	}
	return out, nil
}

// childErr prefers the typed missing-reference error so the operator sees
// which participant id failed to resolve.
func childErr(last error, msg string) error {
	var missing *state.ReferenceNotFoundError
	if errors.As(last, &missing) {
		return missing
	}
	return snapErr(msg)
}
