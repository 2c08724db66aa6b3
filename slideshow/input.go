package slideshow

import "math"

// SwipeConfidenceThreshold 是触发翻页所需的最小滑动力度 |offset * velocity|
const SwipeConfidenceThreshold = 10000

// StepForKey 把按键名映射为翻页步长。同时接受浏览器风格 ("ArrowRight")
// 和 fyne 风格 ("Right") 的名称。
func StepForKey(name string) (int, bool) {
	switch name {
	case "ArrowRight", "ArrowUp", "Right", "Up":
		return 1, true
	case "ArrowLeft", "ArrowDown", "Left", "Down":
		return -1, true
	default:
		return 0, false
	}
}

// SwipePower 返回一次拖动释放的力度
func SwipePower(offset, velocity float64) float64 {
	return math.Abs(offset * velocity)
}

// StepForSwipe 根据拖动释放时的位移和速度决定翻页方向：
// 向右拖（正位移）回到上一张，向左拖前进到下一张，力度不足时不翻页。
func StepForSwipe(offset, velocity float64) (int, bool) {
	if SwipePower(offset, velocity) <= SwipeConfidenceThreshold {
		return 0, false
	}
	switch {
	case offset > 0:
		return -1, true
	case offset < 0:
		return 1, true
	default:
		return 0, false
	}
}
