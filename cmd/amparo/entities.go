package main

import (
	"context"
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"amparo/internal/app"
	"amparo/internal/domain"
	"amparo/internal/format"
	"amparo/internal/notify"
	"amparo/internal/validate"
)

func usuarioCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "usuario", Short: "Manage program participants"}
	cmd.AddCommand(usuarioListCmd())
	cmd.AddCommand(usuarioShowCmd())
	cmd.AddCommand(usuarioCreateCmd())
	cmd.AddCommand(usuarioUpdateCmd())
	cmd.AddCommand(usuarioDeleteCmd())
	return cmd
}

func usuarioListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List participants",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withAuthedApp(cmd.Context(), func(ctx context.Context, a *app.App) error {
				a.Usuarios.FetchAll(ctx)
				snap := a.Usuarios.Snapshot()
				if snap.Err != "" {
					return snapErr(snap.Err)
				}
				if viper.GetBool("json") {
					return printJSON(snap.Items)
				}
				t := newTable()
				t.AppendHeader(table.Row{"ID", "Nome", "Nascimento", "Telefone", "Admissão", "Status"})
				for _, u := range snap.Items {
					t.AppendRow(table.Row{u.ID, u.FullName, u.BirthDate, u.Phone, u.AdmissionDate, u.Status})
				}
				t.Render()
				return nil
			})
		},
	}
}

func usuarioShowCmd() *cobra.Command {
	var id string
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show one participant",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withAuthedApp(cmd.Context(), func(ctx context.Context, a *app.App) error {
				a.Usuarios.FetchOne(ctx, id)
				snap := a.Usuarios.Snapshot()
				if snap.Err != "" {
					return snapErr(snap.Err)
				}
				return printJSON(snap.Current)
			})
		},
	}
	cmd.Flags().StringVar(&id, "id", "", "participant id")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}

func usuarioCreateCmd() *cobra.Command {
	var u domain.Usuario
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Register a participant",
		RunE: func(cmd *cobra.Command, args []string) error {
			u.CPF = format.CPF(u.CPF)
			u.RG = format.RG(u.RG)
			u.Phone = format.Phone(u.Phone)
			u.ParentPhone = format.Phone(u.ParentPhone)
			if err := validate.Struct(u); err != nil {
				return err
			}
			return withAuthedApp(cmd.Context(), func(ctx context.Context, a *app.App) error {
				created, ok := a.Usuarios.Create(ctx, u)
				if !ok {
					return snapErr(a.Usuarios.Snapshot().Err)
				}
				notify.Success("usuario %s registered (id %s)", created.FullName, created.ID)
				return nil
			})
		},
	}
	f := cmd.Flags()
	f.StringVar(&u.FullName, "nome", "", "full name")
	f.StringVar(&u.BirthDate, "nascimento", "", "birth date (YYYY-MM-DD)")
	f.StringVar(&u.RG, "rg", "", "identity card")
	f.StringVar(&u.CPF, "cpf", "", "taxpayer id")
	f.StringVar(&u.Address, "endereco", "", "address")
	f.StringVar(&u.Phone, "telefone", "", "phone")
	f.StringVar(&u.ParentName, "responsavel", "", "guardian name")
	f.StringVar(&u.ParentPhone, "telefone-responsavel", "", "guardian phone")
	f.StringVar(&u.EmergencyContact, "contato-emergencia", "", "emergency contact")
	f.StringVar(&u.AdmissionDate, "admissao", "", "admission date (YYYY-MM-DD)")
	f.StringVar(&u.Observations, "observacoes", "", "free-text notes")
	_ = cmd.MarkFlagRequired("nome")
	return cmd
}

func usuarioUpdateCmd() *cobra.Command {
	var id string
	var u domain.Usuario
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update a participant (only supplied fields change)",
		RunE: func(cmd *cobra.Command, args []string) error {
			patch := map[string]any{}
			addChanged(cmd, patch, "nome", "fullName", u.FullName)
			addChanged(cmd, patch, "nascimento", "birthDate", u.BirthDate)
			addChanged(cmd, patch, "rg", "rg", format.RG(u.RG))
			addChanged(cmd, patch, "cpf", "cpf", format.CPF(u.CPF))
			addChanged(cmd, patch, "endereco", "address", u.Address)
			addChanged(cmd, patch, "telefone", "phone", format.Phone(u.Phone))
			addChanged(cmd, patch, "responsavel", "parentName", u.ParentName)
			addChanged(cmd, patch, "telefone-responsavel", "parentPhone", format.Phone(u.ParentPhone))
			addChanged(cmd, patch, "contato-emergencia", "emergencyContact", u.EmergencyContact)
			addChanged(cmd, patch, "admissao", "admissionDate", u.AdmissionDate)
			addChanged(cmd, patch, "observacoes", "observations", u.Observations)
			addChanged(cmd, patch, "status", "status", u.Status)
			if len(patch) == 0 {
				return fmt.Errorf("nothing to update; supply at least one field flag")
			}
			return withAuthedApp(cmd.Context(), func(ctx context.Context, a *app.App) error {
				updated, ok := a.Usuarios.Update(ctx, id, patch)
				if !ok {
					return snapErr(a.Usuarios.Snapshot().Err)
				}
				notify.Success("usuario %s updated", updated.ID)
				return nil
			})
		},
	}
	f := cmd.Flags()
	f.StringVar(&id, "id", "", "participant id")
	f.StringVar(&u.FullName, "nome", "", "full name")
	f.StringVar(&u.BirthDate, "nascimento", "", "birth date")
	f.StringVar(&u.RG, "rg", "", "identity card")
	f.StringVar(&u.CPF, "cpf", "", "taxpayer id")
	f.StringVar(&u.Address, "endereco", "", "address")
	f.StringVar(&u.Phone, "telefone", "", "phone")
	f.StringVar(&u.ParentName, "responsavel", "", "guardian name")
	f.StringVar(&u.ParentPhone, "telefone-responsavel", "", "guardian phone")
	f.StringVar(&u.EmergencyContact, "contato-emergencia", "", "emergency contact")
	f.StringVar(&u.AdmissionDate, "admissao", "", "admission date")
	f.StringVar(&u.Observations, "observacoes", "", "free-text notes")
	f.StringVar(&u.Status, "status", "", "record status")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}

func usuarioDeleteCmd() *cobra.Command {
	var id string
	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete a participant",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !confirm(fmt.Sprintf("delete usuario %s?", id)) {
				notify.Info("canceled")
				return nil
			}
			return withAuthedApp(cmd.Context(), func(ctx context.Context, a *app.App) error {
				if !a.Usuarios.Delete(ctx, id) {
					return snapErr(a.Usuarios.Snapshot().Err)
				}
				notify.Success("usuario %s deleted", id)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&id, "id", "", "participant id")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}

func empresaCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "empresa", Short: "Manage partner companies"}
	cmd.AddCommand(empresaListCmd())
	cmd.AddCommand(empresaShowCmd())
	cmd.AddCommand(empresaCreateCmd())
	cmd.AddCommand(empresaUpdateCmd())
	cmd.AddCommand(empresaDeleteCmd())
	return cmd
}

func empresaListCmd() *cobra.Command {
	var sector string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List partner companies",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withAuthedApp(cmd.Context(), func(ctx context.Context, a *app.App) error {
				a.Empresas.FetchAll(ctx)
				snap := a.Empresas.Snapshot()
				if snap.Err != "" {
					return snapErr(snap.Err)
				}
				items := snap.Items
				if sector != "" {
					filtered := items[:0]
					for _, e := range items {
						if e.Sector == sector {
							filtered = append(filtered, e)
						}
					}
					items = filtered
				}
				if viper.GetBool("json") {
					return printJSON(items)
				}
				t := newTable()
				t.AppendHeader(table.Row{"ID", "Nome", "Setor", "RH", "Vagas", "Ativos", "Status"})
				for _, e := range items {
					t.AppendRow(table.Row{e.ID, e.Name, e.Sector, e.HRContact, len(e.AvailablePositions), e.ActiveUsers, e.Status})
				}
				t.Render()
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&sector, "setor", "", "filter by sector")
	return cmd
}

func empresaShowCmd() *cobra.Command {
	var id string
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show one company",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withAuthedApp(cmd.Context(), func(ctx context.Context, a *app.App) error {
				a.Empresas.FetchOne(ctx, id)
				snap := a.Empresas.Snapshot()
				if snap.Err != "" {
					return snapErr(snap.Err)
				}
				return printJSON(snap.Current)
			})
		},
	}
	cmd.Flags().StringVar(&id, "id", "", "company id")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}

func empresaCreateCmd() *cobra.Command {
	var e domain.Empresa
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Register a partner company",
		RunE: func(cmd *cobra.Command, args []string) error {
			e.Phone = format.Phone(e.Phone)
			e.HRPhone = format.Phone(e.HRPhone)
			if e.AvailablePositions == nil {
				e.AvailablePositions = []string{}
			}
			if err := validate.Struct(e); err != nil {
				return err
			}
			return withAuthedApp(cmd.Context(), func(ctx context.Context, a *app.App) error {
				created, ok := a.Empresas.Create(ctx, e)
				if !ok {
					return snapErr(a.Empresas.Snapshot().Err)
				}
				notify.Success("empresa %s registered (id %s)", created.Name, created.ID)
				return nil
			})
		},
	}
	f := cmd.Flags()
	f.StringVar(&e.Name, "nome", "", "company name")
	f.StringVar(&e.CNPJ, "cnpj", "", "tax id")
	f.StringVar(&e.Sector, "setor", "", "sector")
	f.StringVar(&e.Address, "endereco", "", "address")
	f.StringVar(&e.Phone, "telefone", "", "phone")
	f.StringVar(&e.Email, "email", "", "email")
	f.StringVar(&e.HRContact, "contato-rh", "", "HR contact name")
	f.StringVar(&e.HRPhone, "telefone-rh", "", "HR phone")
	f.StringVar(&e.HREmail, "email-rh", "", "HR email")
	f.StringArrayVar(&e.AvailablePositions, "vaga", nil, "open position (repeatable)")
	f.StringVar(&e.Observations, "observacoes", "", "free-text notes")
	_ = cmd.MarkFlagRequired("nome")
	_ = cmd.MarkFlagRequired("setor")
	return cmd
}

func empresaUpdateCmd() *cobra.Command {
	var id string
	var e domain.Empresa
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update a company (only supplied fields change)",
		RunE: func(cmd *cobra.Command, args []string) error {
			patch := map[string]any{}
			addChanged(cmd, patch, "nome", "name", e.Name)
			addChanged(cmd, patch, "cnpj", "cnpj", e.CNPJ)
			addChanged(cmd, patch, "setor", "sector", e.Sector)
			addChanged(cmd, patch, "endereco", "address", e.Address)
			addChanged(cmd, patch, "telefone", "phone", format.Phone(e.Phone))
			addChanged(cmd, patch, "email", "email", e.Email)
			addChanged(cmd, patch, "contato-rh", "hrContact", e.HRContact)
			addChanged(cmd, patch, "telefone-rh", "hrPhone", format.Phone(e.HRPhone))
			addChanged(cmd, patch, "email-rh", "hrEmail", e.HREmail)
			addChanged(cmd, patch, "observacoes", "observations", e.Observations)
			addChanged(cmd, patch, "status", "status", e.Status)
			if cmd.Flags().Changed("vaga") {
				positions := e.AvailablePositions
				if positions == nil {
					positions = []string{}
				}
				patch["availablePositions"] = positions
			}
			if len(patch) == 0 {
				return fmt.Errorf("nothing to update; supply at least one field flag")
			}
			return withAuthedApp(cmd.Context(), func(ctx context.Context, a *app.App) error {
				updated, ok := a.Empresas.Update(ctx, id, patch)
				if !ok {
					return snapErr(a.Empresas.Snapshot().Err)
				}
				notify.Success("empresa %s updated", updated.ID)
				return nil
			})
		},
	}
	f := cmd.Flags()
	f.StringVar(&id, "id", "", "company id")
	f.StringVar(&e.Name, "nome", "", "company name")
	f.StringVar(&e.CNPJ, "cnpj", "", "tax id")
	f.StringVar(&e.Sector, "setor", "", "sector")
	f.StringVar(&e.Address, "endereco", "", "address")
	f.StringVar(&e.Phone, "telefone", "", "phone")
	f.StringVar(&e.Email, "email", "", "email")
	f.StringVar(&e.HRContact, "contato-rh", "", "HR contact name")
	f.StringVar(&e.HRPhone, "telefone-rh", "", "HR phone")
	f.StringVar(&e.HREmail, "email-rh", "", "HR email")
	f.StringArrayVar(&e.AvailablePositions, "vaga", nil, "open position (repeatable; replaces list)")
	f.StringVar(&e.Observations, "observacoes", "", "free-text notes")
	f.StringVar(&e.Status, "status", "", "record status")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}

func empresaDeleteCmd() *cobra.Command {
	var id string
	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete a company",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !confirm(fmt.Sprintf("delete empresa %s?", id)) {
				notify.Info("canceled")
				return nil
			}
			return withAuthedApp(cmd.Context(), func(ctx context.Context, a *app.App) error {
				if !a.Empresas.Delete(ctx, id) {
					return snapErr(a.Empresas.Snapshot().Err)
				}
				notify.Success("empresa %s deleted", id)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&id, "id", "", "company id")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}

func funcionarioCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "funcionario", Short: "Manage staff"}
	cmd.AddCommand(funcionarioListCmd())
	cmd.AddCommand(funcionarioShowCmd())
	cmd.AddCommand(funcionarioCreateCmd())
	cmd.AddCommand(funcionarioUpdateCmd())
	cmd.AddCommand(funcionarioDeleteCmd())
	return cmd
}

func funcionarioListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List staff",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withAuthedApp(cmd.Context(), func(ctx context.Context, a *app.App) error {
				a.Funcionarios.FetchAll(ctx)
				snap := a.Funcionarios.Snapshot()
				if snap.Err != "" {
					return snapErr(snap.Err)
				}
				if viper.GetBool("json") {
					return printJSON(snap.Items)
				}
				t := newTable()
				t.AppendHeader(table.Row{"ID", "Nome", "Email", "Cargo", "Departamento", "Status"})
				for _, f := range snap.Items {
					t.AppendRow(table.Row{f.ID, f.FullName, f.Email, f.Role, f.Department, f.Status})
				}
				t.Render()
				return nil
			})
		},
	}
}

func funcionarioShowCmd() *cobra.Command {
	var id string
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show one staff member",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withAuthedApp(cmd.Context(), func(ctx context.Context, a *app.App) error {
				a.Funcionarios.FetchOne(ctx, id)
				snap := a.Funcionarios.Snapshot()
				if snap.Err != "" {
					return snapErr(snap.Err)
				}
				return printJSON(snap.Current)
			})
		},
	}
	cmd.Flags().StringVar(&id, "id", "", "staff id")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}

func funcionarioCreateCmd() *cobra.Command {
	var f domain.Funcionario
	var confirmPassword string
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Register a staff member",
		RunE: func(cmd *cobra.Command, args []string) error {
			f.CPF = format.CPF(f.CPF)
			f.RG = format.RG(f.RG)
			f.Phone = format.Phone(f.Phone)
			f.Salary = format.Currency(f.Salary)
			if err := validate.Struct(f); err != nil {
				return err
			}
			if err := validate.PasswordConfirmation(f.Password, confirmPassword); err != nil {
				return err
			}
			return withAuthedApp(cmd.Context(), func(ctx context.Context, a *app.App) error {
				created, ok := a.Funcionarios.Create(ctx, f)
				if !ok {
					return snapErr(a.Funcionarios.Snapshot().Err)
				}
				notify.Success("funcionario %s registered (id %s)", created.FullName, created.ID)
				return nil
			})
		},
	}
	fl := cmd.Flags()
	fl.StringVar(&f.FullName, "nome", "", "full name")
	fl.StringVar(&f.Email, "email", "", "email")
	fl.StringVar(&f.Phone, "telefone", "", "phone")
	fl.StringVar(&f.CPF, "cpf", "", "taxpayer id")
	fl.StringVar(&f.RG, "rg", "", "identity card")
	fl.StringVar(&f.BirthDate, "nascimento", "", "birth date")
	fl.StringVar(&f.Address, "endereco", "", "address")
	fl.StringVar(&f.Role, "cargo", "", "role")
	fl.StringVar(&f.Department, "departamento", "", "department")
	fl.StringVar(&f.AdmissionDate, "admissao", "", "admission date")
	fl.StringVar(&f.Salary, "salario", "", "salary (digits, in centavos)")
	fl.StringVar(&f.WorkSchedule, "horario", "", "work schedule")
	fl.StringVar(&f.Observations, "observacoes", "", "free-text notes")
	fl.StringVar(&f.Password, "senha", "", "password")
	fl.StringVar(&confirmPassword, "confirmar-senha", "", "password confirmation")
	_ = cmd.MarkFlagRequired("nome")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("senha")
	return cmd
}

func funcionarioUpdateCmd() *cobra.Command {
	var id string
	var f domain.Funcionario
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update a staff member (only supplied fields change)",
		RunE: func(cmd *cobra.Command, args []string) error {
			patch := map[string]any{}
			addChanged(cmd, patch, "nome", "fullName", f.FullName)
			addChanged(cmd, patch, "email", "email", f.Email)
			addChanged(cmd, patch, "telefone", "phone", format.Phone(f.Phone))
			addChanged(cmd, patch, "cargo", "role", f.Role)
			addChanged(cmd, patch, "departamento", "department", f.Department)
			addChanged(cmd, patch, "salario", "salary", format.Currency(f.Salary))
			addChanged(cmd, patch, "horario", "workSchedule", f.WorkSchedule)
			addChanged(cmd, patch, "observacoes", "observations", f.Observations)
			addChanged(cmd, patch, "senha", "password", f.Password)
			addChanged(cmd, patch, "status", "status", f.Status)
			if len(patch) == 0 {
				return fmt.Errorf("nothing to update; supply at least one field flag")
			}
			return withAuthedApp(cmd.Context(), func(ctx context.Context, a *app.App) error {
				updated, ok := a.Funcionarios.Update(ctx, id, patch)
				if !ok {
					return snapErr(a.Funcionarios.Snapshot().Err)
				}
				notify.Success("funcionario %s updated", updated.ID)
				return nil
			})
		},
	}
	fl := cmd.Flags()
	fl.StringVar(&id, "id", "", "staff id")
	fl.StringVar(&f.FullName, "nome", "", "full name")
	fl.StringVar(&f.Email, "email", "", "email")
	fl.StringVar(&f.Phone, "telefone", "", "phone")
	fl.StringVar(&f.Role, "cargo", "", "role")
	fl.StringVar(&f.Department, "departamento", "", "department")
	fl.StringVar(&f.Salary, "salario", "", "salary")
	fl.StringVar(&f.WorkSchedule, "horario", "", "work schedule")
	fl.StringVar(&f.Observations, "observacoes", "", "free-text notes")
	fl.StringVar(&f.Password, "senha", "", "password")
	fl.StringVar(&f.Status, "status", "", "record status")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}

func funcionarioDeleteCmd() *cobra.Command {
	var id string
	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete a staff member",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !confirm(fmt.Sprintf("delete funcionario %s?", id)) {
				notify.Info("canceled")
				return nil
			}
			return withAuthedApp(cmd.Context(), func(ctx context.Context, a *app.App) error {
				if !a.Funcionarios.Delete(ctx, id) {
					return snapErr(a.Funcionarios.Snapshot().Err)
				}
				notify.Success("funcionario %s deleted", id)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&id, "id", "", "staff id")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}

// addChanged includes a field in the patch only when its flag was
// supplied, preserving partial-update semantics.
func addChanged(cmd *cobra.Command, patch map[string]any, flag, field string, value any) {
	if cmd.Flags().Changed(flag) {
		patch[field] = value
	}
}
