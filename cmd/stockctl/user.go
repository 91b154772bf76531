package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jhoicas/stockroom-api/internal/application/auth"
	"github.com/jhoicas/stockroom-api/internal/domain"
)

func newUserCommand(open userStoreOpener) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Administración de usuarios",
	}
	cmd.AddCommand(newUserCreateCommand(open))
	return cmd
}

func newUserCreateCommand(open userStoreOpener) *cobra.Command {
	var username, password, email string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Crea un usuario o actualiza password y email si ya existe",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			users, closeFn, err := open(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			// El secreto JWT no interviene al guardar usuarios.
			uc := auth.NewAuthUseCase(users, auth.JWTConfig{})
			u, err := uc.SaveUser(cmd.Context(), username, password, email)
			if errors.Is(err, domain.ErrInvalidInput) {
				return errors.New("username requerido y password entre 8 y 72 caracteres")
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "usuario %s guardado (id %s)\n", u.Username, u.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&username, "username", "", "nombre de usuario (se normaliza)")
	cmd.Flags().StringVar(&password, "password", "", "password en claro; se guarda con bcrypt")
	cmd.Flags().StringVar(&email, "email", "", "email opcional")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}
