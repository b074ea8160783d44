// Package checklist holds the in-memory checklist model.
//
// The checklist file format (checklist.json):
//
//	{
//	  "categories": [
//	    {
//	      "id": 1,
//	      "name": "General",
//	      "tasks": [
//	        {
//	          "text": "Task text",
//	          "completed": false,
//	          "created": "2025-01-02T15:04:05",
//	          "notes": ["optional note"],
//	          "subtasks": [{"text": "sub", "completed": false}],
//	          "priority": "high",
//	          "due_date": "2025-02-01",
//	          "reminder": "2025-01-15T09:00:00"
//	        }
//	      ]
//	    }
//	  ],
//	  "current_category": 1
//	}
//
// Optional task fields (notes, subtasks, priority, due_date, reminder)
// are omitted when empty or default-valued and reconstructed with their
// defaults on load. "priority" is only written when it is not "medium".
//
// # Ownership
//
// The Checklist owns its Categories, each Category owns its Tasks, and
// each Task owns its Subtasks and notes. Relationships are tree-shaped:
// categories are addressed by id, tasks and subtasks by position.
//
// All operations here are pure in-memory mutations; persistence lives
// in the storage package.
package checklist
