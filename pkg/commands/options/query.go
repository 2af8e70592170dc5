package options

import (
	"github.com/spf13/cobra"

	"tableflip.dev/memo/pkg/todo"
)

// QueryOptions
type QueryOptions struct {
	Search   string
	Status   string
	Category string
	Sort     string
}

func AddSearchArg(cmd *cobra.Command, o *QueryOptions) {
	cmd.Flags().StringVarP(&o.Search, "search", "s", "",
		"Only show entries containing this text, ignoring case.")
}

func AddQueryArgs(cmd *cobra.Command, o *QueryOptions) {
	AddSearchArg(cmd, o)
	cmd.Flags().StringVar(&o.Status, "status", string(todo.StatusAll),
		"Status filter, one of all, active, completed, today, upcoming, overdue.")
	cmd.Flags().StringVar(&o.Category, "category", todo.AllCategories,
		`Category filter, "all" for every category.`)
	cmd.Flags().StringVar(&o.Sort, "sort", string(todo.SortDateAsc),
		"Sort order, one of date-asc, date-desc, priority-desc, priority-asc, alpha.")

	_ = cmd.RegisterFlagCompletionFunc("status", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		out := make([]string, 0, len(todo.AllStatuses()))
		for _, s := range todo.AllStatuses() {
			out = append(out, string(s))
		}
		return out, cobra.ShellCompDirectiveNoFileComp
	})
	_ = cmd.RegisterFlagCompletionFunc("sort", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		out := make([]string, 0, len(todo.AllSortKeys()))
		for _, k := range todo.AllSortKeys() {
			out = append(out, string(k))
		}
		return out, cobra.ShellCompDirectiveNoFileComp
	})
}

// Query validates the flags and builds the todo query.
func (o *QueryOptions) Query() (todo.Query, error) {
	status, err := todo.ParseStatus(o.Status)
	if err != nil {
		return todo.Query{}, err
	}
	sort, err := todo.ParseSortKey(o.Sort)
	if err != nil {
		return todo.Query{}, err
	}
	category := o.Category
	if category == "" {
		category = todo.AllCategories
	}
	return todo.Query{
		Search:   o.Search,
		Status:   status,
		Category: category,
		Sort:     sort,
	}, nil
}
