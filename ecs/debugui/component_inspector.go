package debugui

import (
	"fmt"
	"reflect"
	"slices"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/tetris/ecs"
)

var stringerType = reflect.TypeFor[fmt.Stringer]()

// ComponentInspector shows and edits the components of the entity selected
// in Browser. Numbers, bools and strings are editable; named integer types
// with a String method are shown by name only.
type ComponentInspector struct {
	Title   string
	Storage *ecs.Storage
	Browser *EntityBrowser
}

func NewComponentInspector(storage *ecs.Storage, browser *EntityBrowser) *ComponentInspector {
	return &ComponentInspector{
		Title:   "Component Inspector",
		Storage: storage,
		Browser: browser,
	}
}

func (ci *ComponentInspector) Render() {
	imgui.SetNextWindowPosV(imgui.NewVec2(560, 250), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(230, 260), imgui.CondOnce)
	if !imgui.BeginV(ci.Title, nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}
	defer imgui.End()

	id, ok := ci.Browser.Selected()
	if !ok {
		imgui.Text("No entity selected")
		return
	}
	if !ci.Storage.Alive(id) {
		imgui.Text(fmt.Sprintf("Entity %s is gone", id))
		return
	}
	archetype := ci.Storage.Archetype(id.ArchetypeId())

	imgui.Text(fmt.Sprintf("Entity ID: %s", id))
	imgui.Text(fmt.Sprintf("Archetype: 0x%X", archetype.ID()))
	imgui.Separator()

	for _, compType := range archetype.Types() {
		component := ci.Storage.GetComponent(id, compType)
		if component == nil {
			continue
		}

		if imgui.TreeNodeStr(compType.String()) {
			val := reflect.ValueOf(component).Elem()
			if val.Kind() == reflect.Struct {
				ci.renderStruct(id, compType, val, nil)
			} else {
				ci.renderValue(id, compType, compType.Name(), val, nil)
			}
			imgui.TreePop()
		}
	}
}

func (ci *ComponentInspector) renderStruct(id ecs.EntityId, compType reflect.Type, val reflect.Value, path []int) {
	for _, field := range fieldCache.Fields(val.Type()) {
		fieldVal := val.Field(field.Index)
		fieldPath := append(slices.Clip(path), field.Index)
		if field.IsPointer {
			if fieldVal.IsNil() {
				imgui.Text(fmt.Sprintf("%s: nil", field.Name))
				continue
			}
			fieldVal = fieldVal.Elem()
		}
		ci.renderValue(id, compType, field.Name, fieldVal, fieldPath)
	}
}

func (ci *ComponentInspector) renderValue(id ecs.EntityId, compType reflect.Type, name string, val reflect.Value, path []int) {
	imgui.PushIDStr(name)
	defer imgui.PopID()

	if isEnum(val) {
		imgui.Text(fmt.Sprintf("%s: %s", name, val.Interface()))
		return
	}

	switch val.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		v := int32(val.Int())
		imgui.Text(fmt.Sprintf("%s:", name))
		imgui.SameLine()
		imgui.SetNextItemWidth(120)
		if imgui.InputInt("##value", &v) {
			SetField(ci.Storage, id, compType, path, int64(v))
		}

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		v := int32(val.Uint())
		imgui.Text(fmt.Sprintf("%s:", name))
		imgui.SameLine()
		imgui.SetNextItemWidth(120)
		if imgui.InputInt("##value", &v) && v >= 0 {
			SetField(ci.Storage, id, compType, path, uint64(v))
		}

	case reflect.Float32, reflect.Float64:
		v := float32(val.Float())
		imgui.Text(fmt.Sprintf("%s:", name))
		imgui.SameLine()
		imgui.SetNextItemWidth(120)
		if imgui.InputFloat("##value", &v) {
			SetField(ci.Storage, id, compType, path, float64(v))
		}

	case reflect.Bool:
		v := val.Bool()
		if imgui.Checkbox(name, &v) {
			SetField(ci.Storage, id, compType, path, v)
		}

	case reflect.String:
		v := val.String()
		imgui.Text(fmt.Sprintf("%s:", name))
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputTextWithHint("##value", "", &v, imgui.InputTextFlagsNone, nil) {
			SetField(ci.Storage, id, compType, path, v)
		}

	case reflect.Struct:
		if imgui.TreeNodeStr(name) {
			ci.renderStruct(id, compType, val, path)
			imgui.TreePop()
		}

	case reflect.Slice, reflect.Array:
		imgui.Text(fmt.Sprintf("%s: [%d items]", name, val.Len()))

	case reflect.Map:
		imgui.Text(fmt.Sprintf("%s: map[%d items]", name, val.Len()))

	default:
		imgui.Text(fmt.Sprintf("%s: %v", name, val))
	}
}

// isEnum reports whether val is a named integer with a String method.
func isEnum(val reflect.Value) bool {
	switch val.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return val.Type().Implements(stringerType) && val.CanInterface()
	}
	return false
}

// SetField writes value into the entity's component of type compType at the
// field index path. An empty path targets the component itself. Value must
// be an int64, uint64, float64, bool or string matching the field's kind.
// It reports false when the entity is gone, the path does not resolve, or
// the value does not fit the field.
func SetField(storage *ecs.Storage, id ecs.EntityId, compType reflect.Type, path []int, value any) bool {
	component := storage.GetComponent(id, compType)
	if component == nil {
		return false
	}

	field := reflect.ValueOf(component).Elem()
	for _, i := range path {
		if field.Kind() == reflect.Pointer {
			if field.IsNil() {
				return false
			}
			field = field.Elem()
		}
		if field.Kind() != reflect.Struct || i < 0 || i >= field.NumField() {
			return false
		}
		field = field.Field(i)
	}
	if field.Kind() == reflect.Pointer {
		if field.IsNil() {
			return false
		}
		field = field.Elem()
	}
	if !field.CanSet() {
		return false
	}

	switch field.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		v, ok := value.(int64)
		if !ok || field.OverflowInt(v) {
			return false
		}
		field.SetInt(v)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		v, ok := value.(uint64)
		if !ok || field.OverflowUint(v) {
			return false
		}
		field.SetUint(v)
	case reflect.Float32, reflect.Float64:
		v, ok := value.(float64)
		if !ok {
			return false
		}
		field.SetFloat(v)
	case reflect.Bool:
		v, ok := value.(bool)
		if !ok {
			return false
		}
		field.SetBool(v)
	case reflect.String:
		v, ok := value.(string)
		if !ok {
			return false
		}
		field.SetString(v)
	default:
		return false
	}
	return true
}
