// Package inventory builds an Ansible inventory tree from classified hosts
// and encodes it as YAML.
package inventory

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/ThomasCrouzet/invgen/internal/model"
)

const (
	// RootGroup is the name of the implicit top-level Ansible group.
	RootGroup = "all"

	serviceNameVar = "service_name"
	serverTypeVar  = "server_type"
)

var (
	ErrEmptyService  = errors.New("service name is empty")
	ErrEmptyHostname = errors.New("host name is empty")
	ErrReservedVar   = errors.New("variable is reserved")
)

// Inventory is the root "all" group. It carries the global vars and exactly
// one service group.
type Inventory struct {
	Vars    map[string]Value
	Service *ServiceGroup
}

// ServiceGroup holds one child group per datacenter. It has no vars.
type ServiceGroup struct {
	Name        string
	Datacenters map[string]*DatacenterGroup
}

// DatacenterGroup holds the role groups seen for one datacenter code.
// Hosts are never attached to it directly.
type DatacenterGroup struct {
	Code   string
	Groups map[string]*RoleGroup
}

// RoleGroup is the only group kind that holds hosts. It never has children.
type RoleGroup struct {
	Name  string
	Role  model.Role
	Hosts map[string]Value
	Vars  map[string]Value
}

// New creates an empty inventory for the given service.
func New(service string) (*Inventory, error) {
	if strings.TrimSpace(service) == "" {
		return nil, ErrEmptyService
	}
	return &Inventory{
		Vars: map[string]Value{
			serviceNameVar: String(strings.ToUpper(service)),
		},
		Service: &ServiceGroup{
			Name:        service,
			Datacenters: make(map[string]*DatacenterGroup),
		},
	}, nil
}

// Build classifies every record and inserts it into a new inventory.
func Build(service string, records []model.HostRecord) (*Inventory, error) {
	inv, err := New(service)
	if err != nil {
		return nil, err
	}
	for _, r := range records {
		if strings.TrimSpace(r.Name) == "" {
			return nil, fmt.Errorf("record %d: %w", r.Row, ErrEmptyHostname)
		}
		inv.Insert(model.Classify(r.Name), r.Name)
	}
	return inv, nil
}

// Insert adds a host under its datacenter and role group, creating the groups
// on first use. A host name already present in the group is overwritten.
func (inv *Inventory) Insert(c model.Classification, hostname string) {
	dc, ok := inv.Service.Datacenters[c.Datacenter]
	if !ok {
		dc = &DatacenterGroup{
			Code:   c.Datacenter,
			Groups: make(map[string]*RoleGroup),
		}
		inv.Service.Datacenters[c.Datacenter] = dc
	}

	name := c.Group()
	rg, ok := dc.Groups[name]
	if !ok {
		rg = &RoleGroup{
			Name:  name,
			Role:  c.Role,
			Hosts: make(map[string]Value),
			Vars: map[string]Value{
				serverTypeVar: String(string(c.Role)),
			},
		}
		dc.Groups[name] = rg
	}

	rg.Hosts[strings.ToLower(hostname)] = NoValue
}

// SetVar adds a global variable to the root group. The service name variable
// cannot be replaced.
func (inv *Inventory) SetVar(key, value string) error {
	if key == serviceNameVar {
		return fmt.Errorf("%s: %w", key, ErrReservedVar)
	}
	if key == "" {
		return errors.New("variable name is empty")
	}
	inv.Vars[key] = String(value)
	return nil
}

// Lookup returns the role group with the given name, e.g. "nyc_webservers".
func (inv *Inventory) Lookup(group string) (*RoleGroup, bool) {
	for _, dc := range inv.Service.Datacenters {
		if rg, ok := dc.Groups[group]; ok {
			return rg, true
		}
	}
	return nil, false
}

// Datacenters returns the datacenter codes in sorted order.
func (inv *Inventory) Datacenters() []string {
	return sortedKeys(inv.Service.Datacenters)
}

// Groups returns every role group name in sorted order.
func (inv *Inventory) Groups() []string {
	var names []string
	for _, dc := range inv.Service.Datacenters {
		for name := range dc.Groups {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// HostCount returns the number of distinct hosts in the inventory.
func (inv *Inventory) HostCount() int {
	count := 0
	for _, dc := range inv.Service.Datacenters {
		for _, rg := range dc.Groups {
			count += len(rg.Hosts)
		}
	}
	return count
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
