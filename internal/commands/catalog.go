package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/financehub-dev/financehub/internal/finance"
	"github.com/financehub-dev/financehub/internal/model"
)

func showCatalog(a *app) func(*cobra.Command, []string) error {
	return a.withService(func(cmd *cobra.Command, _ []string, svc *finance.Service) error {
		md, err := a.renderer(svc).Catalog()
		if err != nil {
			return err
		}
		return a.show(cmd, md)
	})
}

func newCategoryCommand(a *app) *cobra.Command {
	catCmd := &cobra.Command{
		Use:     "category",
		Aliases: []string{"categories"},
		Short:   "Manage income and expense categories",
	}
	catCmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List categories and cost centers",
			Args:  cobra.NoArgs,
			RunE:  showCatalog(a),
		},
		newCategoryAddCommand(a),
		newCategoryUpdateCommand(a),
		&cobra.Command{
			Use:   "delete <id>",
			Short: "Delete a category. Its transactions keep the id",
			Args:  cobra.ExactArgs(1),
			RunE: a.withService(func(cmd *cobra.Command, args []string, svc *finance.Service) error {
				if err := svc.DeleteCategory(cmd.Context(), args[0]); err != nil {
					return err
				}
				a.record(cmd, "category.delete", args[0], "")
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted category %s\n", args[0])
				return nil
			}),
		},
	)
	return catCmd
}

type categoryFlags struct {
	name, typ, color, icon string
	active                 bool
}

func (cf *categoryFlags) register(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&cf.name, "name", "", "display name")
	f.StringVar(&cf.typ, "type", string(model.TypeExpense), "income or expense")
	f.StringVar(&cf.color, "color", "#64748b", "hex color")
	f.StringVar(&cf.icon, "icon", "tag", "icon name")
	f.BoolVar(&cf.active, "active", true, "available for new transactions")
}

func newCategoryAddCommand(a *app) *cobra.Command {
	var cf categoryFlags
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a category",
		Args:  cobra.NoArgs,
		RunE: a.withService(func(cmd *cobra.Command, _ []string, svc *finance.Service) error {
			c, err := svc.AddCategory(cmd.Context(), model.Category{
				Name:   cf.name,
				Type:   model.TransactionType(cf.typ),
				Color:  cf.color,
				Icon:   cf.icon,
				Active: cf.active,
			})
			if err != nil {
				return err
			}
			a.record(cmd, "category.add", c.ID, c.Name)
			fmt.Fprintf(cmd.OutOrStdout(), "Added category %s\n", c.ID)
			return nil
		}),
	}
	cf.register(cmd)
	return cmd
}

func newCategoryUpdateCommand(a *app) *cobra.Command {
	var cf categoryFlags
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change a category",
		Args:  cobra.ExactArgs(1),
		RunE: a.withService(func(cmd *cobra.Command, args []string, svc *finance.Service) error {
			f := cmd.Flags()
			var p model.CategoryPatch
			if f.Changed("name") {
				p.Name = &cf.name
			}
			if f.Changed("type") {
				typ := model.TransactionType(cf.typ)
				p.Type = &typ
			}
			if f.Changed("color") {
				p.Color = &cf.color
			}
			if f.Changed("icon") {
				p.Icon = &cf.icon
			}
			if f.Changed("active") {
				p.Active = &cf.active
			}
			c, err := svc.UpdateCategory(cmd.Context(), args[0], p)
			if err != nil {
				return err
			}
			a.record(cmd, "category.update", c.ID, "")
			fmt.Fprintf(cmd.OutOrStdout(), "Updated category %s\n", c.ID)
			return nil
		}),
	}
	cf.register(cmd)
	return cmd
}

func newCostCenterCommand(a *app) *cobra.Command {
	ccCmd := &cobra.Command{
		Use:     "costcenter",
		Aliases: []string{"cc", "costcenters"},
		Short:   "Manage cost centers",
	}

	var name, description string
	var active bool
	register := func(cmd *cobra.Command) *cobra.Command {
		cmd.Flags().StringVar(&name, "name", "", "display name")
		cmd.Flags().StringVar(&description, "description", "", "what the cost center covers")
		cmd.Flags().BoolVar(&active, "active", true, "available for new transactions")
		return cmd
	}

	ccCmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List categories and cost centers",
			Args:  cobra.NoArgs,
			RunE:  showCatalog(a),
		},
		register(&cobra.Command{
			Use:   "add",
			Short: "Create a cost center",
			Args:  cobra.NoArgs,
			RunE: a.withService(func(cmd *cobra.Command, _ []string, svc *finance.Service) error {
				c, err := svc.AddCostCenter(cmd.Context(), model.CostCenter{
					Name:        name,
					Description: description,
					Active:      active,
				})
				if err != nil {
					return err
				}
				a.record(cmd, "costcenter.add", c.ID, c.Name)
				fmt.Fprintf(cmd.OutOrStdout(), "Added cost center %s\n", c.ID)
				return nil
			}),
		}),
		register(&cobra.Command{
			Use:   "update <id>",
			Short: "Change a cost center",
			Args:  cobra.ExactArgs(1),
			RunE: a.withService(func(cmd *cobra.Command, args []string, svc *finance.Service) error {
				f := cmd.Flags()
				var p model.CostCenterPatch
				if f.Changed("name") {
					p.Name = &name
				}
				if f.Changed("description") {
					p.Description = &description
				}
				if f.Changed("active") {
					p.Active = &active
				}
				c, err := svc.UpdateCostCenter(cmd.Context(), args[0], p)
				if err != nil {
					return err
				}
				a.record(cmd, "costcenter.update", c.ID, "")
				fmt.Fprintf(cmd.OutOrStdout(), "Updated cost center %s\n", c.ID)
				return nil
			}),
		}),
		&cobra.Command{
			Use:   "delete <id>",
			Short: "Delete a cost center. Its transactions keep the id",
			Args:  cobra.ExactArgs(1),
			RunE: a.withService(func(cmd *cobra.Command, args []string, svc *finance.Service) error {
				if err := svc.DeleteCostCenter(cmd.Context(), args[0]); err != nil {
					return err
				}
				a.record(cmd, "costcenter.delete", args[0], "")
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted cost center %s\n", args[0])
				return nil
			}),
		},
	)
	return ccCmd
}
