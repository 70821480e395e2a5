package tfs

import (
	"context"
	"strings"

	"github.com/AlekSi/pointer"
	"github.com/microsoft/azure-devops-go-api/azuredevops/v7"
	"github.com/microsoft/azure-devops-go-api/azuredevops/v7/core"
	"github.com/microsoft/azure-devops-go-api/azuredevops/v7/webapi"
	"github.com/microsoft/azure-devops-go-api/azuredevops/v7/workitemtracking"
	"github.com/pkg/errors"
	"github.com/samber/lo"

	"github.com/witctl/witctl/internal/fields"
)

// The service caps work item batch reads at 200 ids per request.
const workItemBatchSize = 200

type Options struct {
	ServerURL   string
	Collection  string
	AccessToken string
}

// Client wraps the vendor object-model API for one project collection. It is
// constructed once, connected explicitly, and passed by reference to each
// operation.
type Client struct {
	opts Options

	connection *azuredevops.Connection
	coreClient core.Client
	witClient  workitemtracking.Client
}

func NewClient(opts Options) *Client {
	return &Client{opts: opts}
}

// CollectionURL is the server URL joined with the collection path, the unit
// the vendor connection is scoped to.
func (c *Client) CollectionURL() string {
	url := strings.TrimSuffix(c.opts.ServerURL, "/")
	if c.opts.Collection == "" {
		return url
	}
	return url + "/" + c.opts.Collection
}

// Connect builds the vendor connection and verifies it with a cheap read.
// It must be called before any other operation.
func (c *Client) Connect(ctx context.Context) error {
	if c.opts.ServerURL == "" {
		return errors.New("no server URL configured")
	}
	if c.opts.AccessToken == "" {
		return errors.New("no access token configured")
	}

	c.connection = azuredevops.NewPatConnection(c.CollectionURL(), c.opts.AccessToken)

	coreClient, err := core.NewClient(ctx, c.connection)
	if err != nil {
		return errors.Wrap(err, "connecting to collection")
	}
	c.coreClient = coreClient

	witClient, err := workitemtracking.NewClient(ctx, c.connection)
	if err != nil {
		return errors.Wrap(err, "connecting to work item tracking service")
	}
	c.witClient = witClient

	// Probe with a minimal query so bad credentials fail here, not later.
	if _, err := c.coreClient.GetProjects(ctx, core.GetProjectsArgs{Top: pointer.To(1)}); err != nil {
		return errors.Wrap(err, "verifying connection")
	}

	return nil
}

// Close releases the connection. The vendor transport holds no persistent
// resources, so this only clears the handles.
func (c *Client) Close() {
	c.connection = nil
	c.coreClient = nil
	c.witClient = nil
}

func (c *Client) connected() error {
	if c.connection == nil {
		return errors.New("client is not connected; call Connect first")
	}
	return nil
}

// Collections lists the team project collections on the server. The
// collections endpoint lives at server level, so this uses its own
// server-scoped connection rather than the collection one.
func (c *Client) Collections(ctx context.Context) ([]Collection, error) {
	serverConn := azuredevops.NewPatConnection(strings.TrimSuffix(c.opts.ServerURL, "/"), c.opts.AccessToken)

	coreClient, err := core.NewClient(ctx, serverConn)
	if err != nil {
		return nil, errors.Wrap(err, "connecting to server")
	}

	refs, err := coreClient.GetProjectCollections(ctx, core.GetProjectCollectionsArgs{})
	if err != nil {
		return nil, errors.Wrap(err, "listing project collections")
	}
	if refs == nil {
		return nil, nil
	}

	return lo.Map(*refs, func(ref core.TeamProjectCollectionReference, _ int) Collection {
		col := Collection{
			Name: pointer.GetString(ref.Name),
			URL:  pointer.GetString(ref.Url),
		}
		if ref.Id != nil {
			col.ID = ref.Id.String()
		}
		return col
	}), nil
}

// Projects lists the team projects in the connected collection.
func (c *Client) Projects(ctx context.Context) ([]Project, error) {
	if err := c.connected(); err != nil {
		return nil, err
	}

	var projects []Project
	response, err := c.coreClient.GetProjects(ctx, core.GetProjectsArgs{})
	if err != nil {
		return nil, errors.Wrap(err, "listing team projects")
	}

	for _, ref := range response.Value {
		p := Project{
			Name:        pointer.GetString(ref.Name),
			Description: pointer.GetString(ref.Description),
			URL:         pointer.GetString(ref.Url),
		}
		if ref.Id != nil {
			p.ID = ref.Id.String()
		}
		if ref.State != nil {
			p.State = string(*ref.State)
		}
		projects = append(projects, p)
	}

	return projects, nil
}

// Queries returns the query definitions of a project, flattened from the
// folder hierarchy the service returns. Folders themselves are not included.
func (c *Client) Queries(ctx context.Context, project string, depth int) ([]QueryDefinition, error) {
	if err := c.connected(); err != nil {
		return nil, err
	}

	items, err := c.witClient.GetQueries(ctx, workitemtracking.GetQueriesArgs{
		Project: &project,
		Depth:   &depth,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "listing queries for project %s", project)
	}
	if items == nil {
		return nil, nil
	}

	var queries []QueryDefinition
	var walk func(items []workitemtracking.QueryHierarchyItem)
	walk = func(items []workitemtracking.QueryHierarchyItem) {
		for _, item := range items {
			if pointer.GetBool(item.IsFolder) {
				if item.Children != nil {
					walk(*item.Children)
				}
				continue
			}

			q := QueryDefinition{
				Name:     pointer.GetString(item.Name),
				Path:     pointer.GetString(item.Path),
				IsPublic: pointer.GetBool(item.IsPublic),
				Wiql:     pointer.GetString(item.Wiql),
			}
			if item.Id != nil {
				q.ID = item.Id.String()
			}
			if item.QueryType != nil {
				q.Type = string(*item.QueryType)
			}
			queries = append(queries, q)
		}
	}
	walk(*items)

	return queries, nil
}

// Fields returns the field definitions visible in a project as fixed-shape
// records. Pass an empty project for the collection-wide field list.
func (c *Client) Fields(ctx context.Context, project string) ([]fields.FieldDetails, error) {
	if err := c.connected(); err != nil {
		return nil, err
	}

	args := workitemtracking.GetWorkItemFieldsArgs{}
	if project != "" {
		args.Project = &project
	}

	defs, err := c.witClient.GetWorkItemFields(ctx, args)
	if err != nil {
		return nil, errors.Wrap(err, "listing field definitions")
	}
	if defs == nil {
		return nil, nil
	}

	return lo.Map(*defs, func(def workitemtracking.WorkItemField2, _ int) fields.FieldDetails {
		d := fields.FieldDetails{
			ReferenceName: pointer.GetString(def.ReferenceName),
			Name:          pointer.GetString(def.Name),
			Description:   pointer.GetString(def.Description),
			ReadOnly:      pointer.GetBool(def.ReadOnly),
			CanSortBy:     pointer.GetBool(def.CanSortBy),
			IsQueryable:   pointer.GetBool(def.IsQueryable),
			IsIdentity:    pointer.GetBool(def.IsIdentity),
			IsPicklist:    pointer.GetBool(def.IsPicklist),
			IsDeleted:     pointer.GetBool(def.IsDeleted),
		}
		if def.Type != nil {
			d.Type = string(*def.Type)
		}
		if def.Usage != nil {
			d.Usage = string(*def.Usage)
		}
		return d
	}), nil
}

// QueryWorkItemIDs runs a flat WIQL query and returns the matching ids.
func (c *Client) QueryWorkItemIDs(ctx context.Context, project, wiql string) ([]int, error) {
	if err := c.connected(); err != nil {
		return nil, err
	}

	args := workitemtracking.QueryByWiqlArgs{
		Wiql: &workitemtracking.Wiql{Query: &wiql},
	}
	if project != "" {
		args.Project = &project
	}

	result, err := c.witClient.QueryByWiql(ctx, args)
	if err != nil {
		return nil, errors.Wrap(err, "running work item query")
	}

	if result.QueryType != nil && *result.QueryType != workitemtracking.QueryTypeValues.Flat {
		return nil, errors.Errorf("only flat queries are supported, got %s", string(*result.QueryType))
	}
	if result.WorkItems == nil {
		return nil, nil
	}

	return lo.FilterMap(*result.WorkItems, func(ref workitemtracking.WorkItemReference, _ int) (int, bool) {
		if ref.Id == nil {
			return 0, false
		}
		return *ref.Id, true
	}), nil
}

// WorkItemFields reads the current value of one field across many work items,
// batched to the service's page limit. Items that do not carry the field map
// to a nil value.
func (c *Client) WorkItemFields(ctx context.Context, ids []int, fieldRef string) (map[int]interface{}, error) {
	if err := c.connected(); err != nil {
		return nil, err
	}

	values := make(map[int]interface{}, len(ids))

	for _, batch := range lo.Chunk(ids, workItemBatchSize) {
		items, err := c.witClient.GetWorkItems(ctx, workitemtracking.GetWorkItemsArgs{
			Ids:    &batch,
			Fields: &[]string{fieldRef},
		})
		if err != nil {
			return nil, errors.Wrap(err, "reading work item fields")
		}
		if items == nil {
			continue
		}

		for _, item := range *items {
			if item.Id == nil {
				continue
			}
			if item.Fields != nil {
				values[*item.Id] = (*item.Fields)[fieldRef]
			} else {
				values[*item.Id] = nil
			}
		}
	}

	return values, nil
}

// SetWorkItemField writes one field value on one work item via a JSON patch.
func (c *Client) SetWorkItemField(ctx context.Context, id int, fieldRef string, value interface{}) error {
	if err := c.connected(); err != nil {
		return err
	}

	op := webapi.OperationValues.Add
	document := []webapi.JsonPatchOperation{
		{
			Op:    &op,
			Path:  pointer.To("/fields/" + fieldRef),
			Value: value,
		},
	}

	_, err := c.witClient.UpdateWorkItem(ctx, workitemtracking.UpdateWorkItemArgs{
		Id:       &id,
		Document: &document,
	})
	return errors.Wrapf(err, "updating work item %d", id)
}
