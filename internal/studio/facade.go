package studio

import (
	"context"
	"fmt"
)

// InterpolationMethod selects how SetValueInterpolated blends between its
// endpoints. Values match the studio's enumeration.
type InterpolationMethod int

const (
	InterpolationStep      InterpolationMethod = 1
	InterpolationLinear    InterpolationMethod = 2
	InterpolationLinearLog InterpolationMethod = 4
	InterpolationCosine    InterpolationMethod = 8
	InterpolationCosineLog InterpolationMethod = 16
)

// APIVersion asks the studio for its automation protocol revision.
func (c *Client) APIVersion(ctx context.Context) (APIVersion, error) {
	raw, err := c.Call(ctx, "Version")
	if err != nil {
		return APIVersion{}, err
	}
	return ParseAPIVersion(raw)
}

// WaitForReady blocks until the studio has drained all queued work.
// Recommended after connecting and after LoadApplication or ExecuteScript.
func (c *Client) WaitForReady(ctx context.Context) error {
	return c.callInto(ctx, nil, "WaitForReady")
}

// Shutdown asks the studio to exit.
func (c *Client) Shutdown(ctx context.Context) error {
	return c.callInto(ctx, nil, "Shutdown")
}

// LoadApplication loads an application file in the studio.
func (c *Client) LoadApplication(ctx context.Context, path string) error {
	return c.callInto(ctx, nil, "LoadApplication", path)
}

// ExecuteScript runs a script file inside the studio.
func (c *Client) ExecuteScript(ctx context.Context, path string) error {
	return c.callInto(ctx, nil, "ExecuteScript", path)
}

// ApplicationInformation returns basic facts about the loaded application.
func (c *Client) ApplicationInformation(ctx context.Context) (map[string]any, error) {
	var info map[string]any
	if err := c.callInto(ctx, &info, "GetApplicationInformation"); err != nil {
		return nil, err
	}
	return info, nil
}

// Modules lists all module names in the loaded application.
func (c *Client) Modules(ctx context.Context) ([]string, error) {
	var names []string
	if err := c.callInto(ctx, &names, "GetModules"); err != nil {
		return nil, err
	}
	return names, nil
}

// ModuleType returns the type of a named module.
func (c *Client) ModuleType(ctx context.Context, module string) (string, error) {
	var typ string
	if err := c.callInto(ctx, &typ, "GetModuleType", module); err != nil {
		return "", err
	}
	return typ, nil
}

// ModuleValue reads a module property.
func (c *Client) ModuleValue(ctx context.Context, module, category, property string) (any, error) {
	return c.value(ctx, module, "", category, property, false)
}

// ModuleValueExtended reads an extended module property.
func (c *Client) ModuleValueExtended(ctx context.Context, module, category, property string) (any, error) {
	return c.value(ctx, module, "", category, property, true)
}

// PortValue reads a property from a port of a module.
func (c *Client) PortValue(ctx context.Context, module, port, category, property string) (any, error) {
	return c.value(ctx, module, port, category, property, false)
}

// PortValueExtended reads an extended property from a port of a module.
func (c *Client) PortValueExtended(ctx context.Context, module, port, category, property string) (any, error) {
	return c.value(ctx, module, port, category, property, true)
}

func (c *Client) value(ctx context.Context, module, port, category, property string, extended bool) (any, error) {
	var value any
	if err := c.callInto(ctx, &value, "GetValue", module, port, category, property, extended); err != nil {
		return nil, err
	}
	return value, nil
}

// SetModuleValue writes a module property.
func (c *Client) SetModuleValue(ctx context.Context, module, category, property string, value any) error {
	return c.callInto(ctx, nil, "SetValue", module, "", category, property, value)
}

// SetPortValue writes a property on a port of a module.
func (c *Client) SetPortValue(ctx context.Context, module, port, category, property string, value any) error {
	return c.callInto(ctx, nil, "SetValue", module, port, category, property, value)
}

// SetModuleValueInterpolated writes a module property interpolated between
// two endpoints at the given percentage.
func (c *Client) SetModuleValueInterpolated(ctx context.Context, module, category, property string, start, end any, percent float64, method InterpolationMethod) error {
	return c.callInto(ctx, nil, "SetValueInterpolated", module, "", category, property, start, end, percent, int(method))
}

// SetPortValueInterpolated writes a port property interpolated between two
// endpoints at the given percentage.
func (c *Client) SetPortValueInterpolated(ctx context.Context, module, port, category, property string, start, end any, percent float64, method InterpolationMethod) error {
	return c.callInto(ctx, nil, "SetValueInterpolated", module, port, category, property, start, end, percent, int(method))
}

// ConnectModules connects a port of one module to a port of another.
func (c *Client) ConnectModules(ctx context.Context, fromModule, fromPort, toModule, toPort string) error {
	return c.callInto(ctx, nil, "Connect", fromModule, fromPort, toModule, toPort)
}

// DisconnectModules removes a connection between two module ports.
func (c *Client) DisconnectModules(ctx context.Context, fromModule, fromPort, toModule, toPort string) error {
	return c.callInto(ctx, nil, "Disconnect", fromModule, fromPort, toModule, toPort)
}

// DeleteModule removes a module from the application.
func (c *Client) DeleteModule(ctx context.Context, module string) error {
	return c.callInto(ctx, nil, "DeleteModule", module)
}

// InstanceModule instantiates a module at the given canvas coordinates and
// returns the name actually assigned.
func (c *Client) InstanceModule(ctx context.Context, module, suggestedName string, x, y int) (string, error) {
	var name string
	if err := c.callInto(ctx, &name, "InstanceModule", module, suggestedName, x, y); err != nil {
		return "", err
	}
	return name, nil
}

// RenameModule renames a module and returns the name actually assigned.
func (c *Client) RenameModule(ctx context.Context, module, suggestedName string) (string, error) {
	var name string
	if err := c.callInto(ctx, &name, "RenameModule", module, suggestedName); err != nil {
		return "", err
	}
	return name, nil
}

// ModulePosition returns a module's canvas coordinates.
func (c *Client) ModulePosition(ctx context.Context, module string) (int, int, error) {
	var pos struct {
		X float64 `json:"X"`
		Y float64 `json:"Y"`
	}
	if err := c.callInto(ctx, &pos, "GetModulePosition", module); err != nil {
		return 0, 0, err
	}
	return int(pos.X), int(pos.Y), nil
}

// Suspend pauses application execution until Resume.
func (c *Client) Suspend(ctx context.Context) error {
	return c.callInto(ctx, nil, "Suspend")
}

// Resume continues application execution, running anything suspended.
func (c *Client) Resume(ctx context.Context) error {
	return c.callInto(ctx, nil, "Resume")
}

// Refresh redraws the viewer and pumps pending input in the studio.
// Potentially unsafe while work is queued.
func (c *Client) Refresh(ctx context.Context) error {
	return c.callInto(ctx, nil, "Refresh")
}

// CheckCancel polls the studio for a user-initiated cancellation and fails
// with ErrCanceledByUser when one is pending. Long-running automation should
// call this between steps.
func (c *Client) CheckCancel(ctx context.Context) error {
	var canceled bool
	if err := c.callInto(ctx, &canceled, "CheckCancel"); err != nil {
		return err
	}
	if canceled {
		return fmt.Errorf("%w: studio operator requested stop", ErrCanceledByUser)
	}
	return nil
}

// SigFig rounds a number to the given count of significant figures.
func (c *Client) SigFig(ctx context.Context, number float64, digits int) (float64, error) {
	var result float64
	if err := c.callInto(ctx, &result, "SigFig", number, digits); err != nil {
		return 0, err
	}
	return result, nil
}

// FormatNumber renders a number with the studio's significant-figure rules.
func (c *Client) FormatNumber(ctx context.Context, number float64, digits int, thousandsSeparators, preserveTrailingZeros bool) (string, error) {
	var result string
	if err := c.callInto(ctx, &result, "FormatNumber", number, digits, thousandsSeparators, preserveTrailingZeros); err != nil {
		return "", err
	}
	return result, nil
}

// FormatNumberAdaptive renders a number, adapting precision to a second
// value's magnitude.
func (c *Client) FormatNumberAdaptive(ctx context.Context, number, adaptSize float64, digits int, thousandsSeparators, preserveTrailingZeros bool) (string, error) {
	var result string
	if err := c.callInto(ctx, &result, "FormatNumberAdaptive", number, adaptSize, digits, thousandsSeparators, preserveTrailingZeros); err != nil {
		return "", err
	}
	return result, nil
}
